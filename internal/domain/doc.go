// Package domain contains the types shared by every failure demonstration.
// It defines the closed taxonomy of failure kinds, the Trigger/Outcome/Report
// model, sentinel and typed errors, and the classification that maps an
// error (or a recovered panic) onto a Kind.
//
// Entity-specific types live in sub-packages (domain/person).
package domain
