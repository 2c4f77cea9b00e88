// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rto-verifier/pkg/types"
)

const challanText = `REGIONAL TRANSPORT OFFICE PUNE
Vehicle No: MH12AB1234
Chassis No: WVWZZZ1JZXW000001
Registration Date: 12-03-2024
Receipt date: 15/03/2024
Customer Name: John Smith, Kothrud`

func TestExtractPermanentChallan(t *testing.T) {
	f := Extract("challan.pdf", challanText, Options{})

	assert.Equal(t, "challan.pdf", f.Source)
	assert.Equal(t, "MH12AB1234", f.VehicleNumber)
	assert.Equal(t, types.RegistrationPermanent, f.RegistrationType)
	assert.False(t, f.TempKeyword)
	require.NotNil(t, f.ChassisNumber)
	assert.Equal(t, "WVWZZZ1JZXW000001", *f.ChassisNumber)
	require.NotNil(t, f.CustomerName)
	assert.Equal(t, "John Smith", *f.CustomerName)
	assert.Equal(t, "12-03-2024", types.Deref(f.RegistrationDate))
	assert.Equal(t, "15/03/2024", types.Deref(f.ReceiptDate))
	assert.Nil(t, f.FallbackDate)
}

func TestExtractVehicleNumber(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		rule     types.NewVehicleRule
		wantVeh  string
		wantType types.RegistrationType
		wantTemp bool
	}{
		{
			name:     "standard plate",
			text:     "Registration mark MH12AB1234 issued",
			wantVeh:  "MH12AB1234",
			wantType: types.RegistrationPermanent,
		},
		{
			name:     "single digit district and single series letter",
			text:     "Plate KA5M0042",
			wantVeh:  "KA5M0042",
			wantType: types.RegistrationPermanent,
		},
		{
			name:     "bh series",
			text:     "Regn. mark 22BH1234AA",
			wantVeh:  "22BH1234AA",
			wantType: types.RegistrationPermanent,
		},
		{
			name:     "standard wins over earlier bh",
			text:     "22BH1234AA then MH01AB0001",
			wantVeh:  "MH01AB0001",
			wantType: types.RegistrationPermanent,
		},
		{
			name:     "lowercase plate is not a plate",
			text:     "plate mh12ab1234",
			wantVeh:  types.VehicleNotFound,
			wantType: types.RegistrationTemporary,
		},
		{
			name:     "new vehicle sentinel",
			text:     "Vehicle No: NEW",
			wantVeh:  types.VehicleNew,
			wantType: types.RegistrationPermanent,
		},
		{
			name:     "new vehicle with temp keyword under default rule",
			text:     "Temporary Registration\nVehicle: New",
			wantVeh:  types.VehicleNew,
			wantType: types.RegistrationPermanent,
			wantTemp: true,
		},
		{
			name:     "new vehicle with temp keyword under keyword rule",
			text:     "TEMP REGN issued. Vehicle: New",
			rule:     types.NewTemporaryIfKeyword,
			wantVeh:  types.VehicleNew,
			wantType: types.RegistrationTemporary,
			wantTemp: true,
		},
		{
			name:     "new vehicle without keyword under keyword rule",
			text:     "Vehicle: new",
			rule:     types.NewTemporaryIfKeyword,
			wantVeh:  types.VehicleNew,
			wantType: types.RegistrationPermanent,
		},
		{
			name:     "no plate with keyword",
			text:     "temporaryregistration receipt",
			wantVeh:  types.VehicleNotFound,
			wantType: types.RegistrationTemporary,
			wantTemp: true,
		},
		{
			name:     "no plate no keyword",
			text:     "fee receipt",
			wantVeh:  types.VehicleNotFound,
			wantType: types.RegistrationTemporary,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Extract("doc.pdf", tt.text, Options{NewVehicleRule: tt.rule})
			assert.Equal(t, tt.wantVeh, f.VehicleNumber)
			assert.Equal(t, tt.wantType, f.RegistrationType)
			assert.Equal(t, tt.wantTemp, f.TempKeyword)
		})
	}
}

func TestExtractChassis(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"seventeen characters", "VIN MA3EWDE1S00123456 end", "MA3EWDE1S00123456"},
		{"sixteen characters", "VIN MA3EWDE1S0012345 end", ""},
		{"eighteen characters", "VIN MA3EWDE1S001234567 end", ""},
		{"contains excluded letter I", "VIN MA3EWDE1S0012345I end", ""},
		{"lowercase", "vin ma3ewde1s00123456", ""},
		{"first in document order", "A: MA3EWDE1S00123456 B: WVWZZZ1JZXW000001", "MA3EWDE1S00123456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Extract("doc.pdf", tt.text, Options{})
			assert.Equal(t, tt.want, f.Chassis())
			assert.Equal(t, tt.want != "", f.HasChassis())
		})
	}
}

func TestExtractCustomerName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *string
	}{
		{"received from", "Received From: Priya Nair, Pune", types.Ptr("Priya Nair")},
		{"capped at four tokens", "Received From: Mr. Anil Kumar Reddy Venkata 500", types.Ptr("Mr. Anil Kumar Reddy")},
		{"honorific label", "Paid by Ms. Anita Desai 4500", types.Ptr("Anita Desai")},
		{"case insensitive label", "CUSTOMER NAME - RAVI", nil},
		{"label followed by digits", "Name: 12345", nil},
		{"no label", "Amount 4500 paid", nil},
		{"run continues across lines", "Name: John Smith\nAddress Line", types.Ptr("John Smith Address Line")},
		{"no-break space after label", "Customer Name:\u00a0John\u00a0Smith", types.Ptr("John Smith")},
		{"ideographic space between tokens", "Name: Priya\u3000Nair", types.Ptr("Priya Nair")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Extract("doc.pdf", tt.text, Options{})
			assert.Equal(t, tt.want, f.CustomerName)
		})
	}
}

func TestExtractDates(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantReg      string
		wantReceipt  string
		wantFallback string
	}{
		{
			name:    "registration date numeric",
			text:    "Regn Date: 01/02/2024 printed 05-05-2024",
			wantReg: "01/02/2024",
		},
		{
			name:    "registration date textual",
			text:    "Reg. Date : 5 Jan 2024",
			wantReg: "5 Jan 2024",
		},
		{
			name:        "receipt only",
			text:        "Receipt Date: 7-Feb-2024",
			wantReceipt: "7-Feb-2024",
		},
		{
			name:         "fallback when unlabelled",
			text:         "Issued on 07-Feb-2024 and 09-09-2024",
			wantFallback: "07-Feb-2024",
		},
		{
			name:    "textual date spaced with no-break spaces",
			text:    "Reg. Date:\u00a05\u00a0Jan\u00a02024",
			wantReg: "5 Jan 2024",
		},
		{
			name:        "receipt label spaced with narrow no-break space",
			text:        "Receipt\u202fdate:\u00a015/03/2024",
			wantReceipt: "15/03/2024",
		},
		{
			name: "no dates",
			text: "no dates here 2024",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Extract("doc.pdf", tt.text, Options{})
			assert.Equal(t, tt.wantReg, types.Deref(f.RegistrationDate))
			assert.Equal(t, tt.wantReceipt, types.Deref(f.ReceiptDate))
			assert.Equal(t, tt.wantFallback, types.Deref(f.FallbackDate))
		})
	}
}

func TestExtractNoBreakSpaces(t *testing.T) {
	f := Extract("a", "Registration Date:\u00a012-03-2024\nCustomer Name:\u00a0John Smith", Options{})

	require.NotNil(t, f.CustomerName)
	assert.Equal(t, "John Smith", *f.CustomerName)
	assert.Equal(t, "12-03-2024", types.Deref(f.RegistrationDate))
	assert.Nil(t, f.FallbackDate)
}

func TestExtractEmptyText(t *testing.T) {
	for _, text := range []string{"", "  \n\t "} {
		f := Extract("blank.pdf", text, Options{})
		assert.Equal(t, types.EmptyFact("blank.pdf"), f)
	}
}
