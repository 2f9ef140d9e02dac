// Package sync describes chest-to-chest mirroring: remote endpoint
// descriptors, the transfer-agent command lines baked into scripts, and
// the generator that writes the open (pull) and close (push) scripts.
//
// The package itself never moves a byte. Generation is pure and cheap;
// the destructive part happens later, out of process, when an operator
// deliberately runs a generated script. Freshly generated scripts refuse
// to act at all until their scare warning is removed or generation is
// told to omit it.
package sync
