package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registry(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		inv      Invocation
		wantErr  error
		checkCmd func(t *testing.T, cmd *Command)
	}{
		{
			name: "happy path",
			inv: Invocation{
				ActionGroup:    "document_storage_action_group",
				Function:       "saveDocument",
				MessageVersion: "1",
				Parameters: []Parameter{
					{Name: "documentName", Value: "contract.txt"},
					{Name: "documentContent", Value: "Parties agree..."},
				},
			},
			checkCmd: func(t *testing.T, cmd *Command) {
				assert.Equal(t, "document_storage_action_group", cmd.ActionGroup)
				assert.Equal(t, "saveDocument", cmd.Function)
				assert.Equal(t, "contract.txt", cmd.Arg("documentName"))
				assert.Equal(t, "Parties agree...", cmd.Arg("documentContent"))
			},
		},
		{
			name: "duplicate parameter - last occurrence wins",
			inv: Invocation{
				Function: "saveDocument",
				Parameters: []Parameter{
					{Name: "documentName", Value: "first.txt"},
					{Name: "documentName", Value: "second.txt"},
				},
			},
			checkCmd: func(t *testing.T, cmd *Command) {
				assert.Equal(t, "second.txt", cmd.Arg("documentName"))
			},
		},
		{
			name: "missing message version defaults to 1",
			inv:  Invocation{Function: "listDocuments"},
			checkCmd: func(t *testing.T, cmd *Command) {
				assert.Equal(t, "1", cmd.MessageVersion)
			},
		},
		{
			name:    "unknown function",
			inv:     Invocation{Function: "dropAllDocuments"},
			wantErr: ErrUnknownFunction,
		},
		{
			name:    "empty function",
			inv:     Invocation{},
			wantErr: ErrUnknownFunction,
		},
	}

	reg := registry("saveDocument", "getDocument", "listDocuments")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Decode(tt.inv, reg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, cmd)
				return
			}
			require.NoError(t, err)
			tt.checkCmd(t, cmd)
		})
	}
}

func TestEncodeShape(t *testing.T) {
	res := Encode("grp", "saveDocument", "1", "Document saved")

	b, err := json.Marshal(res)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))

	assert.Equal(t, "1", raw["messageVersion"])
	inner := raw["response"].(map[string]any)
	assert.Equal(t, "grp", inner["actionGroup"])
	assert.Equal(t, "saveDocument", inner["function"])
	body := inner["functionResponse"].(map[string]any)["responseBody"].(map[string]any)
	assert.Equal(t, "Document saved", body["TEXT"].(map[string]any)["body"])
}

// Decoding a previously encoded envelope's function/actionGroup fields must
// reproduce the original call identity.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	res := Encode("grp", "getDocument", "2", "ok")

	cmd, err := Decode(Invocation{
		ActionGroup:    res.Response.ActionGroup,
		Function:       res.Response.Function,
		MessageVersion: res.MessageVersion,
	}, registry("getDocument"))
	require.NoError(t, err)

	assert.Equal(t, "grp", cmd.ActionGroup)
	assert.Equal(t, "getDocument", cmd.Function)
	assert.Equal(t, "2", cmd.MessageVersion)
}

func TestValidationError(t *testing.T) {
	err := Validationf("document name is required")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "document name is required", err.Error())
	assert.False(t, IsValidation(ErrUnknownFunction))
}
