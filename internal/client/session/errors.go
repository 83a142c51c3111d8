package session

import "errors"

// ErrNoPendingEmail is returned by the OTP verify operations when neither a
// pending two-factor email nor a known profile email is available. It is a
// local precondition failure raised before any network call.
var ErrNoPendingEmail = errors.New("no email available for otp verification")
