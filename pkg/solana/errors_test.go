package solana

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc"
)

func TestParseTransactionError_String(t *testing.T) {
	txErr, err := ParseTransactionError("BlockhashNotFound")
	require.NoError(t, err)
	require.NotNil(t, txErr)

	assert.Equal(t, TransactionErrorBlockhashNotFound, txErr.ErrorKey())
	assert.Nil(t, txErr.InstructionError())
}

func TestParseTransactionError_InstructionError(t *testing.T) {
	var raw interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"InstructionError":[0,{"Custom":42}]}`), &raw))

	txErr, err := ParseTransactionError(raw)
	require.NoError(t, err)
	require.NotNil(t, txErr)

	assert.Equal(t, TransactionErrorInstructionError, txErr.ErrorKey())

	insErr := txErr.InstructionError()
	require.NotNil(t, insErr)
	assert.Equal(t, 0, insErr.Index)

	customErr := insErr.CustomError()
	require.NotNil(t, customErr)
	assert.EqualValues(t, 42, *customErr)
}

func TestParseTransactionError_NamedInstructionError(t *testing.T) {
	var raw interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"InstructionError":[1,"InvalidArgument"]}`), &raw))

	txErr, err := ParseTransactionError(raw)
	require.NoError(t, err)
	require.NotNil(t, txErr)

	insErr := txErr.InstructionError()
	require.NotNil(t, insErr)
	assert.Equal(t, 1, insErr.Index)
	assert.Nil(t, insErr.CustomError())
	assert.Equal(t, "InvalidArgument", insErr.Err.Error())
}

func TestParseTransactionError_Nil(t *testing.T) {
	txErr, err := ParseTransactionError(nil)
	assert.NoError(t, err)
	assert.Nil(t, txErr)
}

func TestParseRPCError(t *testing.T) {
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"err":{"InstructionError":[0,{"Custom":1}]}}`), &data))

	txErr, err := ParseRPCError(&jsonrpc.RPCError{
		Code:    -32002,
		Message: "Transaction simulation failed",
		Data:    data,
	})
	require.NoError(t, err)
	require.NotNil(t, txErr)
	require.NotNil(t, txErr.InstructionError())

	txErr, err = ParseRPCError(nil)
	assert.NoError(t, err)
	assert.Nil(t, txErr)
}
