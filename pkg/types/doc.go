// Package types defines the pets schema contract, the Catalog and RowSet
// interfaces, and the standard errors for the shelter catalog.
//
// The contract is the one place table and column names are spelled out.
// Callers reference TablePets and the Column constants instead of literals.
package types
