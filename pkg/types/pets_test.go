package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPetColumn(t *testing.T) {
	for _, c := range []string{"_id", "name", "breed", "gender", "weight"} {
		assert.True(t, IsPetColumn(c), c)
	}
	for _, c := range []string{"", "id", "Name", "species", "pets"} {
		assert.False(t, IsPetColumn(c), c)
	}
}

func TestParseGender(t *testing.T) {
	tests := []struct {
		in      string
		want    Gender
		wantErr bool
	}{
		{in: "unknown", want: GenderUnknown},
		{in: "", want: GenderUnknown},
		{in: "Male", want: GenderMale},
		{in: " female ", want: GenderFemale},
		{in: "0", want: GenderUnknown},
		{in: "1", want: GenderMale},
		{in: "2", want: GenderFemale},
		{in: "3", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "cat", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGender(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGender)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenderString(t *testing.T) {
	assert.Equal(t, "unknown", GenderUnknown.String())
	assert.Equal(t, "male", GenderMale.String())
	assert.Equal(t, "female", GenderFemale.String())
	assert.Equal(t, "gender(9)", Gender(9).String())
	assert.False(t, Gender(9).Valid())
}

func TestPetValues(t *testing.T) {
	t.Run("sample pet carries every column but the id", func(t *testing.T) {
		v := SamplePet().Values()
		assert.Equal(t, Values{
			ColumnName:   "Toto",
			ColumnBreed:  "Terrier",
			ColumnGender: int64(GenderMale),
			ColumnWeight: int64(7),
		}, v)
	})

	t.Run("nil breed is left out", func(t *testing.T) {
		v := Pet{ID: 42, Name: "Rex"}.Values()
		assert.NotContains(t, v, ColumnBreed)
		assert.NotContains(t, v, ColumnID)
	})
}

func TestRowAccessors(t *testing.T) {
	r := Row{
		ColumnID:     int64(5),
		ColumnName:   []byte("Toto"),
		ColumnBreed:  nil,
		ColumnGender: int64(1),
	}

	assert.Equal(t, int64(5), r.Int64(ColumnID))
	assert.Equal(t, "Toto", r.String(ColumnName))
	assert.True(t, r.IsNull(ColumnBreed))
	assert.False(t, r.IsNull(ColumnWeight))
	assert.False(t, r.Has(ColumnWeight))
	assert.Equal(t, int64(0), r.Int64(ColumnWeight))

	p := r.Pet()
	assert.Equal(t, Pet{ID: 5, Name: "Toto", Gender: GenderMale}, p)
	assert.Nil(t, p.Breed)
	assert.Equal(t, "", p.BreedOrEmpty())
}
