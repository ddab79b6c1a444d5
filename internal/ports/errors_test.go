package ports

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	assert.Equal(t, KindAuthentication, KindOf(AuthenticationError("complete", base)))
	assert.Equal(t, KindService, KindOf(ServiceError("transcribe", base)))
	assert.Equal(t, KindSynthesis, KindOf(fmt.Errorf("wrapped: %w", SynthesisError("synthesize", base))))
	assert.Equal(t, KindCredentialMissing, KindOf(ErrCredentialMissing))
	assert.Equal(t, KindService, KindOf(base))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestError_UnwrapAndMessage(t *testing.T) {
	base := errors.New("status code: 429")
	err := ServiceError("complete", base)

	assert.ErrorIs(t, err, base)
	assert.Equal(t, "complete: status code: 429", err.Error())
	assert.Equal(t, "resolve credential: credential_missing", ErrCredentialMissing.Error())
}

func TestHint(t *testing.T) {
	err := WithHint(AuthenticationError("complete", errors.New("401")), "Clé API invalide.")

	assert.Equal(t, "Clé API invalide.", HintOf(err))
	assert.Equal(t, "plain", HintOf(WithHint(errors.New("plain"), "ignored")))
	assert.Equal(t, "", HintOf(nil))
}
