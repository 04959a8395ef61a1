package errors

var (
	ErrPremiumRequired    = New(CodePremiumRequired, "premium required")
	ErrUserNotFound       = NotFound("user not found")
	ErrChannelNotFound    = NotFound("channel not found")
	ErrIdeaNotFound       = NotFound("content idea not found")
	ErrTopicNotFound      = NotFound("trending topic not found")
	ErrCompetitorNotFound = NotFound("competitor not found")
	ErrInvalidChannelURL  = InvalidArg("invalid YouTube channel URL")
	ErrNotSignedIn        = Unauthorized("not signed in")
)

// PremiumRequired names the feature that was refused and wraps
// ErrPremiumRequired.
func PremiumRequired(feature string) error {
	return Wrap(CodePremiumRequired, feature+" is a premium feature", ErrPremiumRequired)
}

func ErrProviderFailed(cause error) error {
	return Wrap(CodeUnauthenticated, "identity provider rejected session", cause)
}
