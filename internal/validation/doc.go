// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation validates API request bodies with go-playground/validator.
//
// A single validator instance is shared process-wide; it caches struct
// metadata and is safe for concurrent use. Field names in messages are the
// JSON names of the request body.
//
// # Usage
//
//	type addRequest struct {
//	    Kind   string `json:"kind" validate:"required,mediakind"`
//	    ItemID int    `json:"item_id" validate:"gt=0"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
//	    return
//	}
//
// # Custom Tags
//
//   - userkey: non-blank and free of the store key separator
//   - mediakind: movie, series or tv
//   - watchstatus: want_to_watch, watching or watched
package validation
