package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Database file and schema version shipped with the catalog.
const (
	DatabaseName  = "shelter.db"
	SchemaVersion = 1
)

// TablePets is the only table in the catalog. Each row is one pet.
const TablePets = "pets"

// Column names of the pets table.
const (
	// ColumnID is the unique row id, assigned by the store. Type: INTEGER.
	ColumnID = "_id"
	// ColumnName is the pet's name. Type: TEXT, required.
	ColumnName = "name"
	// ColumnBreed is the pet's breed. Type: TEXT, optional.
	ColumnBreed = "breed"
	// ColumnGender holds one of GenderUnknown, GenderMale or GenderFemale.
	// Type: INTEGER, required.
	ColumnGender = "gender"
	// ColumnWeight is the pet's weight. Type: INTEGER, defaults to 0.
	ColumnWeight = "weight"
)

// PetColumns lists every column of the pets table in schema order.
var PetColumns = []string{
	ColumnID,
	ColumnName,
	ColumnBreed,
	ColumnGender,
	ColumnWeight,
}

// IsPetColumn reports whether name is a column of the pets table.
func IsPetColumn(name string) bool {
	for _, c := range PetColumns {
		if c == name {
			return true
		}
	}
	return false
}

// Gender is the closed domain of the gender column.
type Gender int64

// Possible values for the gender of a pet.
const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

// Valid reports whether g is one of the three defined values. The store does
// not enforce this; it is a caller contract.
func (g Gender) Valid() bool {
	return g == GenderUnknown || g == GenderMale || g == GenderFemale
}

func (g Gender) String() string {
	switch g {
	case GenderUnknown:
		return "unknown"
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return fmt.Sprintf("gender(%d)", int64(g))
	}
}

// ParseGender accepts "unknown", "male", "female" (any case) or the digits
// 0, 1 and 2. Anything else returns ErrInvalidGender.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unknown", "":
		return GenderUnknown, nil
	case "male":
		return GenderMale, nil
	case "female":
		return GenderFemale, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || !Gender(n).Valid() {
		return GenderUnknown, fmt.Errorf("%w: %q", ErrInvalidGender, s)
	}
	return Gender(n), nil
}

// Pet is one row of the pets table.
type Pet struct {
	ID     int64   `db:"_id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Breed  *string `db:"breed" json:"breed"`
	Gender Gender  `db:"gender" json:"gender"`
	Weight int64   `db:"weight" json:"weight"`
}

// Values returns the insert payload for p. The id is never included; a nil
// Breed is left out so the column stays NULL.
func (p Pet) Values() Values {
	v := Values{
		ColumnName:   p.Name,
		ColumnGender: int64(p.Gender),
		ColumnWeight: p.Weight,
	}
	if p.Breed != nil {
		v[ColumnBreed] = *p.Breed
	}
	return v
}

// BreedOrEmpty returns the breed, or "" when it is NULL.
func (p Pet) BreedOrEmpty() string {
	if p.Breed == nil {
		return ""
	}
	return *p.Breed
}

// SamplePet returns the hardcoded record used to seed a demo catalog.
func SamplePet() Pet {
	breed := "Terrier"
	return Pet{
		Name:   "Toto",
		Breed:  &breed,
		Gender: GenderMale,
		Weight: 7,
	}
}
