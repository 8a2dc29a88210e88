package errors

import "net/http"

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeConflict           = "CONFLICT"
	CodeNotFound           = "NOT_FOUND"
	CodeTransactionFailure = "TRANSACTION_FAILED"
)

var (
	ErrPlaceNotFound = New(
		"PLACE_NOT_FOUND",
		"Tourist entity not found",
		http.StatusNotFound,
	)

	ErrDistrictNotFound = New(
		"DISTRICT_NOT_FOUND",
		"District not found",
		http.StatusNotFound,
	)

	ErrCategoryNotFound = New(
		"CATEGORY_NOT_FOUND",
		"Category not found",
		http.StatusNotFound,
	)

	ErrSeasonNotFound = New(
		"SEASON_NOT_FOUND",
		"Season not found",
		http.StatusNotFound,
	)

	ErrOperatingHoursNotFound = New(
		"OPERATING_HOURS_NOT_FOUND",
		"Operating hours not found",
		http.StatusNotFound,
	)

	ErrSuggestionNotFound = New(
		"SUGGESTION_NOT_FOUND",
		"Suggestion not found",
		http.StatusNotFound,
	)

	ErrDuplicatePlaceName = New(
		"DUPLICATE_PLACE_NAME",
		"A tourist entity with this name already exists. Please choose a different name.",
		http.StatusConflict,
	)

	ErrDuplicateSuggestion = New(
		"DUPLICATE_SUGGESTION",
		"This suggestion already exists. Please choose a different suggestion.",
		http.StatusConflict,
	)

	ErrHoursOverlap = New(
		"OPERATING_HOURS_OVERLAP",
		"Operating hours overlap with an existing entry for this place and day.",
		http.StatusConflict,
	)

	ErrInvalidOperatingHours = New(
		"INVALID_OPERATING_HOURS",
		"Invalid operating hours",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidID = New(
		"INVALID_ID",
		"Invalid identifier",
		http.StatusBadRequest,
	)

	ErrTooManyFiles = New(
		"TOO_MANY_FILES",
		"Too many uploaded images",
		http.StatusBadRequest,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Missing or invalid access token",
		http.StatusUnauthorized,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
