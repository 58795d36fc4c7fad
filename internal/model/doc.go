// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat transcript:
// messages, the ordered transcript with truncate-on-edit semantics, outgoing
// input validation, and the role/content wire mapping consumed by the chat
// endpoint.
package model
