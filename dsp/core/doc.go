// Package core holds small numeric, buffer and configuration helpers shared
// by the field simulation packages.
package core
