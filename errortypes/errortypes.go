package errortypes

// BadInput should be used when returning errors which are caused by bad input.
// It should _not_ be used if the error is a server-side issue.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// InvalidOverride should be used when a request carries a negative price override.
// Overrides are validated at the request boundary so a negative value never
// reaches the pricing engine.
type InvalidOverride struct {
	Message string
}

func (err *InvalidOverride) Error() string {
	return err.Message
}

func (err *InvalidOverride) Code() int {
	return InvalidOverrideErrorCode
}

func (err *InvalidOverride) Severity() Severity {
	return SeverityFatal
}

// MalformedExt should be used when an impression extension cannot be parsed.
// The extension is ignored and the impression is processed without it.
type MalformedExt struct {
	Message string
}

func (err *MalformedExt) Error() string {
	return err.Message
}

func (err *MalformedExt) Code() int {
	return MalformedExtWarningCode
}

func (err *MalformedExt) Severity() Severity {
	return SeverityWarning
}

// SignatureMismatch should be used when a request signature fails verification.
// Verification is advisory: the warning is logged and the request continues
// unauthenticated.
type SignatureMismatch struct {
	Message string
}

func (err *SignatureMismatch) Error() string {
	return err.Message
}

func (err *SignatureMismatch) Code() int {
	return SignatureMismatchWarningCode
}

func (err *SignatureMismatch) Severity() Severity {
	return SeverityWarning
}

// UnresolvedKey should be used when a signature names a key id the key store
// cannot resolve. Like SignatureMismatch, it never blocks request processing.
type UnresolvedKey struct {
	Message string
}

func (err *UnresolvedKey) Error() string {
	return err.Message
}

func (err *UnresolvedKey) Code() int {
	return UnresolvedKeyWarningCode
}

func (err *UnresolvedKey) Severity() Severity {
	return SeverityWarning
}
