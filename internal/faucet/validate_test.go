package faucet_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github/chapool/go-faucet/internal/faucet"
)

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		address string
		amount  string
		wantErr string
	}{
		{
			name:    "valid",
			address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			amount:  "0.1",
		},
		{
			name:    "valid without hex prefix",
			address: "f39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			amount:  "1",
		},
		{
			name:    "missing address",
			address: "",
			amount:  "0.1",
			wantErr: "Address and amount are required.",
		},
		{
			name:    "missing amount",
			address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			amount:  "",
			wantErr: "Address and amount are required.",
		},
		{
			name:    "missing both",
			address: "",
			amount:  "",
			wantErr: "Address and amount are required.",
		},
		{
			name:    "malformed address",
			address: "0x1234",
			amount:  "0.1",
			wantErr: "Invalid Ethereum address.",
		},
		{
			name:    "non-hex address",
			address: "0xZZZZd6e51aad88F6F4ce6aB8827279cffFb92266",
			amount:  "0.1",
			wantErr: "Invalid Ethereum address.",
		},
		{
			name:    "non-numeric amount",
			address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			amount:  "abc",
			wantErr: "Amount must be a number greater than zero.",
		},
		{
			name:    "zero amount",
			address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			amount:  "0",
			wantErr: "Amount must be a number greater than zero.",
		},
		{
			name:    "negative amount",
			address: "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
			amount:  "-1",
			wantErr: "Amount must be a number greater than zero.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := faucet.ValidateRequest(tt.address, tt.amount)

			if tt.wantErr != "" {
				require.Error(t, err)
				require.True(t, faucet.IsValidationError(err))
				require.Equal(t, tt.wantErr, err.Error())
				require.Nil(t, req)
				return
			}

			require.NoError(t, err)
			require.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", req.To.Hex())
			require.True(t, req.Amount.IsPositive())
			require.Nil(t, req.Token)
		})
	}
}
