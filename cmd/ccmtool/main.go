// SPDX-FileCopyrightText: 2026 The Pion community <https://pion.ly>
// SPDX-License-Identifier: MIT

// Command ccmtool seals, opens and verifies CCM envelopes given as hex.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ccmtool: %v\n", err) //nolint:errcheck

		os.Exit(1)
	}
}
