/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"os"

	"github.com/hyperledger-labs/bigcrypto/internal/primegen"
)

func main() {
	if err := primegen.Command().Execute(); err != nil {
		os.Exit(1)
	}
}
