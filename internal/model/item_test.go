package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeItemCreate(t *testing.T) {
	t.Parallel()

	for name, tc := range map[string]struct {
		input      string
		want       ItemCreate
		wantFields []string
	}{
		"name only": {
			input: `{"name":"widget"}`,
			want:  NewItemCreate("widget", nil),
		},
		"with description": {
			input: `{"name":"widget","description":"blue"}`,
			want:  NewItemCreate("widget", StringPtr("blue")),
		},
		"explicit null description": {
			input: `{"name":"widget","description":null}`,
			want:  NewItemCreate("widget", nil),
		},
		"empty name is still present": {
			input: `{"name":""}`,
			want:  NewItemCreate("", nil),
		},
		"numeric name coerces to text": {
			input: `{"name":42}`,
			want:  NewItemCreate("42", nil),
		},
		"generated fields ignored": {
			input: `{"name":"widget","id":7,"created_at":"2024-01-01T00:00:00","extra":true}`,
			want:  NewItemCreate("widget", nil),
		},
		"missing name": {
			input:      `{"description":"blue"}`,
			wantFields: []string{FieldName},
		},
		"null name": {
			input:      `{"name":null}`,
			wantFields: []string{FieldName},
		},
		"bool name": {
			input:      `{"name":true}`,
			wantFields: []string{FieldName},
		},
		"object description": {
			input:      `{"name":"widget","description":{"a":1}}`,
			wantFields: []string{FieldDescription},
		},
		"not an object": {
			input:      `["widget"]`,
			wantFields: []string{RootField},
		},
		"malformed": {
			input:      `{"name":`,
			wantFields: []string{RootField},
		},
		"trailing data": {
			input:      `{"name":"a"} {"name":"b"}`,
			wantFields: []string{RootField},
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeItemCreate([]byte(tc.input))
			if tc.wantFields != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				assert.Equal(t, tc.wantFields, errorFields(t, err))
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("item create mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeItemBase(t *testing.T) {
	got, err := DecodeItemBase([]byte(`{"name":"widget"}`))
	require.NoError(t, err)
	assert.Equal(t, "widget", got.Name)
	assert.Nil(t, got.Description)

	_, err = DecodeItemBase([]byte(`{}`))
	require.Error(t, err)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, ValidationErrors{{Field: FieldName, Message: MsgFieldRequired}}, verrs)
}

func TestDecodeItem(t *testing.T) {
	t.Parallel()

	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for name, tc := range map[string]struct {
		input      string
		want       Item
		wantFields []string
	}{
		"minimal stored item": {
			input: `{"id":1,"name":"widget","created_at":"2024-01-01T00:00:00"}`,
			want:  Item{ItemBase: ItemBase{Name: "widget"}, ID: 1, CreatedAt: jan1},
		},
		"all fields": {
			input: `{"id":9007199254740993,"name":"widget","description":"blue","created_at":"2024-01-01T00:00:00Z"}`,
			want: Item{
				ItemBase:  ItemBase{Name: "widget", Description: StringPtr("blue")},
				ID:        9007199254740993,
				CreatedAt: jan1,
			},
		},
		"string id and space separator": {
			input: `{"id":"12","name":"widget","created_at":"2024-01-01 00:00"}`,
			want:  Item{ItemBase: ItemBase{Name: "widget"}, ID: 12, CreatedAt: jan1},
		},
		"integral number id": {
			input: `{"id":4.0,"name":"widget","created_at":"2024-01-01T00:00:00"}`,
			want:  Item{ItemBase: ItemBase{Name: "widget"}, ID: 4, CreatedAt: jan1},
		},
		"unix seconds": {
			input: `{"id":3,"name":"widget","created_at":1704067200}`,
			want:  Item{ItemBase: ItemBase{Name: "widget"}, ID: 3, CreatedAt: jan1},
		},
		"unix milliseconds": {
			input: `{"id":3,"name":"widget","created_at":1704067200000}`,
			want:  Item{ItemBase: ItemBase{Name: "widget"}, ID: 3, CreatedAt: jan1},
		},
		"missing id": {
			input:      `{"name":"widget","created_at":"2024-01-01T00:00:00"}`,
			wantFields: []string{FieldID},
		},
		"missing created_at": {
			input:      `{"id":1,"name":"widget"}`,
			wantFields: []string{FieldCreatedAt},
		},
		"fractional id": {
			input:      `{"id":1.5,"name":"widget","created_at":"2024-01-01T00:00:00"}`,
			wantFields: []string{FieldID},
		},
		"float text id": {
			input:      `{"id":"1.0","name":"widget","created_at":"2024-01-01T00:00:00"}`,
			wantFields: []string{FieldID},
		},
		"exponent text id": {
			input:      `{"id":"1e3","name":"widget","created_at":"2024-01-01T00:00:00"}`,
			wantFields: []string{FieldID},
		},
		"bad timestamp": {
			input:      `{"id":1,"name":"widget","created_at":"yesterday"}`,
			wantFields: []string{FieldCreatedAt},
		},
		"everything missing": {
			input:      `{}`,
			wantFields: []string{FieldName, FieldID, FieldCreatedAt},
		},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := DecodeItem([]byte(tc.input))
			if tc.wantFields != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				assert.Equal(t, tc.wantFields, errorFields(t, err))
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("item mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestItemJSONRoundTrip(t *testing.T) {
	in := Item{
		ItemBase:  ItemBase{Name: "widget", Description: StringPtr("blue")},
		ID:        42,
		CreatedAt: time.Date(2024, 5, 1, 15, 30, 0, 123000000, time.UTC),
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Item
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Name, out.Name)
	assert.Equal(t, *in.Description, *out.Description)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
}

func TestItemJSONAbsentDescription(t *testing.T) {
	data, err := json.Marshal(Item{ItemBase: ItemBase{Name: "widget"}, ID: 1, CreatedAt: time.Unix(0, 0).UTC()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"widget","description":null,"created_at":"1970-01-01T00:00:00Z"}`, string(data))
}

func TestUnmarshalValidates(t *testing.T) {
	var create ItemCreate
	err := json.Unmarshal([]byte(`{"description":"no name"}`), &create)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var items []Item
	err = json.Unmarshal([]byte(`[{"id":1,"name":"a","created_at":"2024-01-01T00:00:00"},{"id":2,"name":"b"}]`), &items)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func errorFields(t *testing.T, err error) []string {
	t.Helper()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs), "expected ValidationErrors, got %T", err)
	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fe.Field
	}
	return fields
}
