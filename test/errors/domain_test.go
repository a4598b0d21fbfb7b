package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	commonerrors "github.com/hackerclone/hackerclone/internal/common/errors"
)

func TestDomainError_WithCauseMatchesTaxonomyValue(t *testing.T) {
	cause := fmt.Errorf("connection reset")
	err := commonerrors.ErrStoreFailure.WithCause(cause)

	if !errors.Is(err, commonerrors.ErrStoreFailure) {
		t.Error("derived error should match its taxonomy value")
	}
	if !errors.Is(err, cause) {
		t.Error("derived error should unwrap to its cause")
	}
}

func TestDomainError_SessionMintFailureClassification(t *testing.T) {
	err := commonerrors.ErrSessionMintFailure.WithCause(errors.New("signing failed"))

	if errors.Is(err, commonerrors.ErrStoreFailure) {
		t.Error("a session mint failure is not a database failure")
	}

	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		t.Fatal("expected a domain error")
	}
	if de.Code() != "SESSION_MINT_FAILURE" {
		t.Errorf("expected code SESSION_MINT_FAILURE, got %s", de.Code())
	}
	if de.Category() != commonerrors.CategoryInternal {
		t.Errorf("expected internal category, got %s", de.Category())
	}
	if de.HTTPStatus() != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", de.HTTPStatus())
	}
}

func TestDomainError_DistinctCodesDoNotMatch(t *testing.T) {
	if errors.Is(commonerrors.ErrNotFound, commonerrors.ErrStoreFailure) {
		t.Error("distinct taxonomy values must not match each other")
	}
}
