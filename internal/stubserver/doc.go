// Package stubserver is an in-memory stand-in for the Kamdhenuseva REST
// backend. It serves the same endpoints, envelopes and cookie sessions as
// the production API so the CLI and the session coordinator can be run and
// tested without a real deployment. Email delivery is out of scope; OTP
// codes and verification tokens are logged and retrievable for tests.
package stubserver
