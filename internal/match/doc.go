// Package match scores identifier similarity. The resolver uses it to
// suggest declared view names when a field's membership references an
// unknown view.
package match
