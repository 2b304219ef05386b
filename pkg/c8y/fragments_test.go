package c8y_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

func TestManagedObject_Fragments(t *testing.T) {
	t.Parallel()

	var mo c8y.ManagedObject

	err := json.Unmarshal([]byte(`{
		"id": "42",
		"name": "pump",
		"c8y_IsDevice": {},
		"c8y_Position": {"lat": 51.2, "lng": 6.7}
	}`), &mo)
	require.NoError(t, err)

	assert.Equal(t, "42", mo.ID)
	assert.True(t, mo.IsDevice())
	assert.False(t, mo.Fragments.Has("name"))

	var position struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	}

	require.NoError(t, mo.Fragments.Get("c8y_Position", &position))
	assert.InDelta(t, 51.2, position.Lat, 0.0001)

	err = mo.Fragments.Get("c8y_Hardware", &position)
	require.ErrorIs(t, err, c8y.ErrFragmentNotFound)
}

func TestFragments_DeclaredFieldsWin(t *testing.T) {
	t.Parallel()

	create := c8y.ManagedObjectCreate{Name: "declared"}
	require.NoError(t, create.Fragments.Set("name", "fragment"))
	require.NoError(t, create.Fragments.Set("c8y_Hardware", map[string]string{"serialNumber": "SN-1"}))

	data, err := json.Marshal(create)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"declared","c8y_Hardware":{"serialNumber":"SN-1"}}`, string(data))
}

func TestFragments_ReadOnlyPropertiesAreNotSent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    func(t *testing.T) interface{}
		expected string
	}{
		{
			name: "managed object create",
			value: func(t *testing.T) interface{} {
				create := c8y.ManagedObjectCreate{Type: "c8y_Pump"}
				require.NoError(t, create.Fragments.Set("id", "42"))
				require.NoError(t, create.Fragments.Set("self", "https://t100.cumulocity.com/inventory/managedObjects/42"))
				require.NoError(t, create.Fragments.Set("lastUpdated", "2026-01-01T00:00:00Z"))
				require.NoError(t, create.Fragments.Set("c8y_IsDevice", map[string]string{}))

				return create
			},
			expected: `{"type":"c8y_Pump","c8y_IsDevice":{}}`,
		},
		{
			name: "event update",
			value: func(t *testing.T) interface{} {
				text := "door opened"
				update := c8y.EventUpdate{Text: &text}
				require.NoError(t, update.Fragments.Set("creationTime", "2026-01-01T00:00:00Z"))
				require.NoError(t, update.Fragments.Set("c8y_Door", map[string]bool{"open": true}))

				return update
			},
			expected: `{"text":"door opened","c8y_Door":{"open":true}}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.value(t))
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestFragments_SetEncodeError(t *testing.T) {
	t.Parallel()

	var fragments c8y.Fragments

	err := fragments.Set("c8y_Bad", make(chan int))

	var encodeErr *c8y.EncodeError
	require.ErrorAs(t, err, &encodeErr)
	assert.False(t, fragments.Has("c8y_Bad"))
}

func TestMeasurement_Value(t *testing.T) {
	t.Parallel()

	var measurement c8y.Measurement

	err := json.Unmarshal([]byte(`{
		"id": "m1",
		"type": "c8y_TemperatureMeasurement",
		"source": {"id": "42"},
		"c8y_Temperature": {"T": {"value": 21.5, "unit": "C"}}
	}`), &measurement)
	require.NoError(t, err)

	value, err := measurement.Value("c8y_Temperature", "T")
	require.NoError(t, err)
	assert.InDelta(t, 21.5, value.Value, 0.0001)
	assert.Equal(t, "C", value.Unit)

	_, err = measurement.Value("c8y_Temperature", "missing")
	require.ErrorIs(t, err, c8y.ErrFragmentNotFound)
}

func TestApplicationVersionSelector_Validate(t *testing.T) {
	t.Parallel()

	version := "1.0.0"
	tag := "latest"

	require.NoError(t, c8y.ApplicationVersionSelector{Version: &version}.Validate())
	require.NoError(t, c8y.ApplicationVersionSelector{Tag: &tag}.Validate())
	require.ErrorIs(t, c8y.ApplicationVersionSelector{}.Validate(), c8y.ErrVersionOrTagRequired)
	require.ErrorIs(t, c8y.ApplicationVersionSelector{Version: &version, Tag: &tag}.Validate(), c8y.ErrVersionOrTagRequired)
}

func TestAccept(t *testing.T) {
	t.Parallel()

	assert.Equal(t, c8y.MediaTypeError, c8y.Accept())
	assert.Equal(t, c8y.MediaTypeError+", "+c8y.MediaTypeAlarm, c8y.Accept(c8y.MediaTypeAlarm, "", c8y.MediaTypeError))
}

func TestApplyCallOptions(t *testing.T) {
	t.Parallel()

	options := c8y.ApplyCallOptions([]c8y.CallOption{nil, c8y.WithProcessingMode(c8y.ProcessingModeTransient)})
	assert.Equal(t, c8y.ProcessingModeTransient, options.ProcessingMode)
}
