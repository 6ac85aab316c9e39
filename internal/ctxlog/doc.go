// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger on a context.Context.
//
// The default is a pretty console handler on stderr. The initial level comes
// from the VAULT_LOG_LEVEL environment variable (DEBUG, INFO, WARN or ERROR,
// defaulting to INFO) and can be changed at runtime through LevelVar.
package ctxlog
