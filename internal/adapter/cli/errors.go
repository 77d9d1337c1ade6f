package cli

import (
	"fmt"
	"strings"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

func NoResultError(message string) error {
	return fmt.Errorf("ERROR: NO_RESULT: %s", message)
}

func ValidationFailedError(message string) error {
	return fmt.Errorf("ERROR: VALIDATION_FAILED: %s", message)
}

func InternalError(err error) error {
	return fmt.Errorf("ERROR: unexpected error: %w", err)
}

// mapError explains an empty result with the codes the service recorded.
func mapError(message string, errs map[domain.ErrorCode]string) error {
	if _, ok := errs[domain.ErrorCodePreconditionFailed]; ok {
		return ValidationFailedError(message)
	}
	if len(errs) == 0 {
		return NoResultError(message)
	}
	return NoResultError(fmt.Sprintf("%s (%s)", message, strings.ToUpper(strings.Join(sortedCodes(errs), ", "))))
}
