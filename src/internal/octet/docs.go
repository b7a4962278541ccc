// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package octet provides a caller-owned byte buffer with an explicit logical
// length that is tracked separately from its fixed capacity.
//
// Every write is checked against capacity and fails with [ErrOverflow]
// instead of growing the backing array. Buffers are sized once at
// construction and reused across calls by whoever owns them, which keeps
// the verification engines free of hidden shared state.
package octet
