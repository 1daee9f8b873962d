package storage

import (
	"errors"

	"github.com/minio/minio-go/v7"
)

// permanentCodes are S3 error codes that no amount of redelivery will fix.
// Messages failing with these pile up against the queue's redrive policy and
// land in the dead-letter queue, which is the operator's signal.
var permanentCodes = map[string]bool{
	"AccessDenied":          true,
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"NoSuchBucket":          true,
	"InvalidBucketName":     true,
	"AllAccessDisabled":     true,
}

// IsPermanent reports whether err is a storage failure that cannot be
// resolved by retrying the same request.
func IsPermanent(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return permanentCodes[resp.Code]
	}
	return false
}

// IsTransient reports whether err is worth retrying via redelivery:
// network-level failures, throttling, and server-side 5xx responses.
// Anything that is not provably permanent is treated as transient, since
// redelivery of an idempotent write is always safe.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		if permanentCodes[resp.Code] {
			return false
		}
		switch resp.Code {
		case "SlowDown", "RequestTimeout", "InternalError", "ServiceUnavailable":
			return true
		}
		return resp.StatusCode >= 500
	}
	// No S3 error response means the request never completed (DNS,
	// connection reset, timeout) — retryable.
	return true
}
