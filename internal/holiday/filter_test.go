package holiday

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/apprentice-calendar/pkg/dateutil"
)

var recife = Location{City: "Recife", State: "PE", IBGECode: "2611606"}

func TestApplies(t *testing.T) {
	d := dateutil.Date(2025, 3, 6)

	tests := []struct {
		name string
		h    Holiday
		loc  Location
		want bool
	}{
		{"national everywhere", Holiday{Date: d, Level: LevelNational}, recife, true},
		{"optional everywhere", Holiday{Date: d, Level: LevelOptional}, recife, true},
		{"state match", Holiday{Date: d, Level: LevelState, StateCode: "pe"}, recife, true},
		{"state mismatch", Holiday{Date: d, Level: LevelState, StateCode: "SP"}, recife, false},
		{"state without code", Holiday{Date: d, Level: LevelState, Name: "Data Magna PE"}, recife, false},
		{"municipal by ibge", Holiday{Date: d, Level: LevelMunicipal, IBGECode: "2611606"}, recife, true},
		{"municipal other ibge", Holiday{Date: d, Level: LevelMunicipal, IBGECode: "3550308", City: "Recife"}, recife, false},
		{"municipal by city name", Holiday{Date: d, Level: LevelMunicipal, City: "recife", StateCode: "PE"}, Location{City: "Recife", State: "PE"}, true},
		{"municipal city accents", Holiday{Date: d, Level: LevelMunicipal, City: "São Paulo"}, Location{City: "Sao  Paulo", State: "SP"}, true},
		{"municipal same name other state", Holiday{Date: d, Level: LevelMunicipal, City: "Bonito", StateCode: "MS"}, Location{City: "Bonito", State: "PE"}, false},
		{"municipal without city", Holiday{Date: d, Level: LevelMunicipal}, recife, false},
		{"unknown level", Holiday{Date: d, Level: Level("regional")}, recife, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Applies(tt.h, tt.loc))
		})
	}
}

func TestApplicable_PriorityResolution(t *testing.T) {
	christmas := dateutil.Date(2025, 12, 25)
	holidays := []Holiday{
		{Date: christmas, Name: "Municipal Christmas", Level: LevelMunicipal, City: "Campinas", StateCode: "SP"},
		{Date: christmas, Name: "Optional Christmas", Level: LevelOptional},
		{Date: christmas, Name: "Christmas", Level: LevelNational},
	}

	got := Applicable(holidays, recife)

	require.Len(t, got, 1)
	assert.Equal(t, "Christmas", got[0].Name)
	assert.Equal(t, LevelNational, got[0].Level)
}

func TestApplicable_StateBeatsMunicipal(t *testing.T) {
	d := dateutil.Date(2025, 6, 24)
	holidays := []Holiday{
		{Date: d, Name: "São João (Recife)", Level: LevelMunicipal, IBGECode: "2611606"},
		{Date: d, Name: "São João", Level: LevelState, StateCode: "PE"},
	}

	got := Applicable(holidays, recife)

	require.Len(t, got, 1)
	assert.Equal(t, "São João", got[0].Name)
}

func TestApplicable_SortedAndFiltered(t *testing.T) {
	holidays := []Holiday{
		{Date: dateutil.Date(2025, 12, 25), Name: "Christmas", Level: LevelNational},
		{Date: dateutil.Date(2025, 1, 25), Name: "São Paulo Anniversary", Level: LevelMunicipal, City: "São Paulo"},
		{Date: dateutil.Date(2025, 3, 6), Name: "Pernambuco Revolution", Level: LevelState, StateCode: "PE"},
		{Date: dateutil.Date(2025, 1, 1), Name: "New Year", Level: LevelNational},
	}

	got := Applicable(holidays, recife)

	require.Len(t, got, 3)
	assert.Equal(t, "New Year", got[0].Name)
	assert.Equal(t, "Pernambuco Revolution", got[1].Name)
	assert.Equal(t, "Christmas", got[2].Name)
}

func TestBetween(t *testing.T) {
	holidays := []Holiday{
		{Date: dateutil.Date(2024, 12, 25), Level: LevelNational},
		{Date: dateutil.Date(2025, 1, 1), Level: LevelNational},
		{Date: dateutil.Date(2025, 12, 31), Level: LevelNational},
		{Date: dateutil.Date(2026, 1, 1), Level: LevelNational},
	}

	got := Between(holidays, dateutil.Date(2025, 1, 1), dateutil.Date(2025, 12, 31))
	assert.Len(t, got, 2)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"national":    LevelNational,
		"Nacional":    LevelNational,
		"estadual":    LevelState,
		"municipal":   LevelMunicipal,
		"facultativo": LevelOptional,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("federal")
	assert.Error(t, err)
}

func TestLevelPriorityOrder(t *testing.T) {
	assert.Greater(t, LevelNational.Priority(), LevelState.Priority())
	assert.Greater(t, LevelState.Priority(), LevelMunicipal.Priority())
	assert.Greater(t, LevelMunicipal.Priority(), LevelOptional.Priority())
	assert.Equal(t, 0, Level("").Priority())
}
