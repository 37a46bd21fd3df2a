// SPDX-License-Identifier: Apache-2.0

package response

import "strings"

// Normalize converts a section or field label into its lookup key: surrounding
// whitespace is dropped and every inner run of whitespace becomes a single
// underscore. Case is preserved. Normalize is idempotent.
func Normalize(label string) string {
	return strings.Join(strings.Fields(label), "_")
}
