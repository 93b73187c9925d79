package wizard

import "errors"

var (
	// ErrStepOutOfRange is returned when a step index falls outside the
	// definition.
	ErrStepOutOfRange = errors.New("wizard: step index out of range")

	// ErrTagMismatch reports that an echoed integrity tag did not verify.
	// Wizard.VerifyStep returns it (wrapped with the step index); Submit
	// recovers from the condition by re-rendering the affected step with a
	// notice and flagging the Outcome as Tampered.
	ErrTagMismatch = errors.New("wizard: integrity tag mismatch")
)

// defaultTamperNotice is shown when an integrity tag fails to verify. The
// message is deliberately generic: expired state and tampered state are
// indistinguishable on the server.
const defaultTamperNotice = "We could not verify the information you submitted earlier. Please review this step and continue again."
