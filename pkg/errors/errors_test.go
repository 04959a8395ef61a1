package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("deleting: %w", ErrChannelNotFound)
	assert.True(t, stderrors.Is(wrapped, ErrChannelNotFound))
	assert.False(t, stderrors.Is(wrapped, ErrIdeaNotFound))
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
}

func TestPremiumRequired(t *testing.T) {
	err := PremiumRequired("Competitor analysis")
	assert.ErrorIs(t, err, ErrPremiumRequired)
	assert.Equal(t, "Competitor analysis is a premium feature: premium required", err.Error())
	assert.Equal(t, http.StatusPaymentRequired, HTTPStatus(err))
	assert.Equal(t, "Competitor analysis is a premium feature", PublicMessage(err))
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidArg("bad"), http.StatusBadRequest},
		{ErrNotSignedIn, http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{ErrCompetitorNotFound, http.StatusNotFound},
		{AlreadyExists("dup"), http.StatusConflict},
		{DeadlineExceeded("slow", nil), http.StatusGatewayTimeout},
		{Configuration("missing key"), http.StatusInternalServerError},
		{stderrors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, HTTPStatus(c.err), c.err.Error())
	}
}

func TestPublicMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "Internal server error", PublicMessage(stderrors.New("pq: password authentication failed")))
	assert.Equal(t, "channel not found", PublicMessage(ErrChannelNotFound))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeUnknown, CodeOf(stderrors.New("plain")))
	assert.False(t, HasCode(nil, CodeUnknown))
}
