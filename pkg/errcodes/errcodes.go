package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	InvalidPaging        failure.ErrorCode = "InvalidPaging"
	InvalidSortOrder     failure.ErrorCode = "InvalidSortOrder"
	InvalidCoordinates   failure.ErrorCode = "InvalidCoordinates"
	InvalidLogisticsMode failure.ErrorCode = "InvalidLogisticsMode"
	InvalidLanguage      failure.ErrorCode = "InvalidLanguage"
	InvalidQuestion      failure.ErrorCode = "InvalidQuestion"

	DealNotFound     failure.ErrorCode = "DealNotFound"
	DealFetchFailed  failure.ErrorCode = "DealFetchFailed"
	MissingAPIKey    failure.ErrorCode = "MissingAPIKey"
	GenerationFailed failure.ErrorCode = "GenerationFailed"
)
