// Package core implements the fleet service workflows: manual service
// entry, spreadsheet history import, notification dispatch, reporting,
// and the scooter/category/damage operations behind the HTTP API.
//
// # Error Codes Reference
//
// User-facing errors carry a short code staff can quote to support:
//
//	DB001  - Duplicate key (record already exists)
//	DB002  - Foreign key (referenced record missing)
//	DB003  - Connection refused
//	DB004  - Operation timed out
//	VAL001 - Invalid date format in a row
//	VAL002 - Invalid kilometer value in a row
//	VAL003 - Next service km not greater than current km
//	VAL004 - Required spreadsheet columns missing
//	VAL005 - No valid rows in the uploaded file
//	VAL006 - Required field missing
//	FILE001 - Upload too large
//	FILE002 - File is not a readable workbook
//	CAT001 - Category still has scooters
//	REQ001 - Request cancelled or timed out
//	REQ002 - Malformed JSON body
//	RATE001 - Too many requests
//	ERR000 - Unmapped error (check server logs)
//
// Patterns are matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns sit above general ones.
package core

import "strings"

// UserMessage is the client-facing shape of an error: what happened,
// what to do about it, and a code for support reference.
type UserMessage struct {
	Message string
	Action  string
	Code    string
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A record with this ID already exists",
			Action:  "Check the scooter ID and try again",
			Code:    "DB001",
		},
	},
	{
		pattern: "foreign key",
		msg: UserMessage{
			Message: "Referenced record does not exist",
			Action:  "Make sure the category or scooter exists first",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Please try again in a few moments",
			Code:    "DB003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB004",
		},
	},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "A row has an unreadable service date",
			Action:  "Use DD/MM/YYYY or DD-MMM-YY date formats",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid kilometer",
		msg: UserMessage{
			Message: "A row has an unreadable kilometer value",
			Action:  "Kilometer cells must contain a non-negative number",
			Code:    "VAL002",
		},
	},
	{
		pattern: "next service km must be greater",
		msg: UserMessage{
			Message: "Next service km must be greater than current km",
			Action:  "Check the MILAGE and NEXT SERVICE columns",
			Code:    "VAL003",
		},
	},
	{
		pattern: "missing required columns",
		msg: UserMessage{
			Message: "The spreadsheet is missing required columns",
			Action:  "Include service date, current km, and next service km columns",
			Code:    "VAL004",
		},
	},
	{
		pattern: "no valid records",
		msg: UserMessage{
			Message: "No valid service records were found in the file",
			Action:  "Review the rejected rows and fix the source spreadsheet",
			Code:    "VAL005",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The uploaded file is too large",
			Action:  "Split the spreadsheet into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "workbook",
		msg: UserMessage{
			Message: "The file could not be read as a spreadsheet",
			Action:  "Upload an .xlsx workbook with a header row",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The uploaded file has no rows",
			Action:  "Upload a spreadsheet with a header row and data",
			Code:    "FILE002",
		},
	},
	{
		pattern: "category still has scooters",
		msg: UserMessage{
			Message: "This category still has scooters assigned",
			Action:  "Move or delete its scooters first",
			Code:    "CAT001",
		},
	},
	{
		pattern: "invalid json body",
		msg: UserMessage{
			Message: "The request body is not valid JSON",
			Action:  "Check the request payload format",
			Code:    "REQ002",
		},
	},
	{
		pattern: "required",
		msg: UserMessage{
			Message: "A required field is missing",
			Action:  "Fill in every required field and retry",
			Code:    "VAL006",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Check your connection and try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

// defaultMessage is the ERR000 fallback. Support staff should check the
// server logs for the original technical error when users report it.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-facing message. The first
// matching pattern wins; unmatched errors get the ERR000 fallback.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}
