package bedrock

import (
	"errors"
	"fmt"
	"net/http"

	smithy "github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"goa.design/agentbridge/runtime/bridge"
)

// classify maps an AWS failure into the bridge failure taxonomy. Provider
// error codes take precedence; when none is present the HTTP status of the
// response error decides. Anything unrecognized classifies as internal.
func classify(operation string, err error) error {
	return bridge.NewInvokeError(failureKind(err), fmt.Sprintf("bedrock agent: %s failed", operation), err)
}

func failureKind(err error) bridge.FailureKind {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ValidationException":
			return bridge.FailureValidation
		case "AccessDeniedException":
			return bridge.FailureAccessDenied
		case "ResourceNotFoundException":
			return bridge.FailureNotFound
		case "ThrottlingException", "ServiceQuotaExceededException":
			return bridge.FailureThrottled
		case "ServiceUnavailableException", "BadGatewayException", "DependencyFailedException":
			return bridge.FailureUnavailable
		default:
			return bridge.FailureInternal
		}
	}
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		switch status := respErr.HTTPStatusCode(); {
		case status == http.StatusBadRequest:
			return bridge.FailureValidation
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return bridge.FailureAccessDenied
		case status == http.StatusNotFound:
			return bridge.FailureNotFound
		case status == http.StatusTooManyRequests:
			return bridge.FailureThrottled
		case status >= http.StatusInternalServerError:
			return bridge.FailureUnavailable
		}
	}
	return bridge.FailureInternal
}
