package records

import (
	"testing"

	"github.com/alpinefleet/tachoscan/pkg/result"
	"github.com/stretchr/testify/require"
)

func TestDecodeDriverApplicationIdentification(t *testing.T) {
	payload := make([]byte, 17)
	copy(payload[0:16], []byte("1234567890ABCDEF"))
	payload[16] = 0x03

	res := &result.TachographFile{}
	err := DecodeDriverApplicationIdentification(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Equal(t, "1234567890ABCDEF", res.Driver.CardNumber)
	require.NotEmpty(t, res.Driver.IssuingNation)
}

func TestDecodeCardIdentificationAndHolderWithDatefBirthDate(t *testing.T) {
	payload := make([]byte, 36+36+4+2)
	off := 0
	copy(payload[off:off+36], []byte("Doe"))
	off += 36
	copy(payload[off:off+36], []byte("Jane"))
	off += 36
	// BCD 1990-05-15
	payload[off+0] = 0x19
	payload[off+1] = 0x90
	payload[off+2] = 0x05
	payload[off+3] = 0x15
	off += 4
	copy(payload[off:off+2], []byte("en"))

	res := &result.TachographFile{}
	err := DecodeCardIdentificationAndHolder(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Equal(t, "Doe", res.Driver.Surname)
	require.Equal(t, "Jane", res.Driver.FirstNames)
	require.False(t, res.Driver.BirthDateUsedTimeReal)
	require.Equal(t, 1990, res.Driver.BirthDate.Year())
	require.Equal(t, "en", res.Driver.PreferredLanguage)
	require.Empty(t, res.Warnings)
}

func TestDecodeCardIdentificationAndHolderFallsBackToTimeReal(t *testing.T) {
	payload := make([]byte, 36+36+4+2)
	off := 36 + 36
	// not a valid Datef (year bytes 0x5E 0x00 are not BCD digits), but a
	// plausible TimeReal: 0x5E000000
	payload[off+0] = 0x5E
	payload[off+1] = 0x00
	payload[off+2] = 0x00
	payload[off+3] = 0x00

	res := &result.TachographFile{}
	err := DecodeCardIdentificationAndHolder(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.True(t, res.Driver.BirthDateUsedTimeReal)
	require.Len(t, res.Warnings, 1)
	require.Equal(t, "birth_date_timereal_fallback", res.Warnings[0].Code)
}

func TestDecodeDrivingLicenceInformation(t *testing.T) {
	payload := make([]byte, 36+1+16)
	copy(payload[0:36], []byte("DVLA"))
	payload[36] = 0x0B
	copy(payload[37:53], []byte("LICENCE1234567"))

	res := &result.TachographFile{}
	err := DecodeDrivingLicenceInformation(res, result.GenerationG1, Config{}, payload)
	require.NoError(t, err)
	require.Equal(t, "DVLA", res.Driver.Licence.Authority)
	require.Equal(t, "LICENCE1234567", res.Driver.Licence.Number)
}
