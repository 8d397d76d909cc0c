// Package emit renders resolved views into generated source text.
//
// For every view of a record it produces three artifacts: the view type
// itself, a reborrow method that narrows the exclusive borrow scope while
// keeping the shared scope fixed, and an exported constructor template
// that builds the view off an owner expression. Output ordering follows
// view declaration order and record field order, so repeated runs produce
// byte-identical files.
package emit
