package gwas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestStat(coded CodedAllele, effect float32) *AssociationStat {
	return &AssociationStat{
		Variant:     NewVariant("rs12345", "3", 12345, "G", "C"),
		CodedAllele: coded,
		Effect:      effect,
		SE:          0.1,
		P:           0.02,
	}
}

func TestAssociationStat_AlleleResolution(t *testing.T) {
	stat := newTestStat(A1Coded, 0.5)
	assert.Equal(t, "G", stat.CodedAlleleString())
	assert.Equal(t, "C", stat.ReferenceAlleleString())

	stat.CodedAllele = A2Coded
	assert.Equal(t, "C", stat.CodedAlleleString())
	assert.Equal(t, "G", stat.ReferenceAlleleString())
}

func TestFlipCodedAllele_Beta(t *testing.T) {
	stat := newTestStat(A1Coded, 0.5)

	require.NoError(t, stat.FlipCodedAllele(EffectBeta))
	assert.Equal(t, float32(-0.5), stat.Effect)
	assert.Equal(t, A2Coded, stat.CodedAllele)

	// Flipping twice restores the original record.
	require.NoError(t, stat.FlipCodedAllele(EffectBeta))
	assert.Equal(t, float32(0.5), stat.Effect)
	assert.Equal(t, A1Coded, stat.CodedAllele)
}

func TestFlipCodedAllele_OddsRatio(t *testing.T) {
	stat := newTestStat(A1Coded, 1.3)

	require.NoError(t, stat.FlipCodedAllele(EffectOR))
	assert.InEpsilon(t, 1.0/1.3, stat.Effect, 1e-5)
	assert.Equal(t, A2Coded, stat.CodedAllele)

	require.NoError(t, stat.FlipCodedAllele(EffectOR))
	assert.InEpsilon(t, 1.3, stat.Effect, 1e-5)
	assert.Equal(t, A1Coded, stat.CodedAllele)
}

func TestFlipCodedAllele_HazardRatio(t *testing.T) {
	stat := newTestStat(A2Coded, 0.85)

	require.NoError(t, stat.FlipCodedAllele(EffectHR))
	assert.InEpsilon(t, 1.0/0.85, stat.Effect, 1e-5)
	assert.Equal(t, A1Coded, stat.CodedAllele)
}

func TestFlipCodedAllele_OtherIsUndefined(t *testing.T) {
	stat := newTestStat(A1Coded, 0.5)

	err := stat.FlipCodedAllele(EffectOther)
	var undefined *UndefinedFlipError
	require.ErrorAs(t, err, &undefined)

	// The record must not be half-flipped.
	assert.Equal(t, float32(0.5), stat.Effect)
	assert.Equal(t, A1Coded, stat.CodedAllele)
}

func TestEffectType_UnmarshalYAML(t *testing.T) {
	var e EffectType
	require.NoError(t, yaml.Unmarshal([]byte(`OR`), &e))
	assert.Equal(t, EffectOR, e)

	assert.Error(t, yaml.Unmarshal([]byte(`log-odds`), &e))
}

func TestSexAndPopulation_UnmarshalYAML(t *testing.T) {
	var s Sex
	require.NoError(t, yaml.Unmarshal([]byte(`Female`), &s))
	assert.Equal(t, SexFemale, s)
	assert.Error(t, yaml.Unmarshal([]byte(`F`), &s))

	var p Population
	require.NoError(t, yaml.Unmarshal([]byte(`TRANS`), &p))
	assert.Equal(t, PopulationTRANS, p)
	assert.Error(t, yaml.Unmarshal([]byte(`ASN`), &p))
}

func TestComponent_Defaults(t *testing.T) {
	var c Component
	require.NoError(t, yaml.Unmarshal([]byte("trait_name: CAD\nformatted_file: x.tsv.gz\neffect_type: Beta\n"), &c))

	assert.Equal(t, SexBoth, c.SexOrDefault())
	assert.Equal(t, PopulationEUR, c.PopulationOrDefault())
	assert.Equal(t, EffectBeta, c.EffectType)
}
