package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/c8y-client/internal/constants"
	"github.com/fivetwenty-io/c8y-client/pkg/c8y"
)

type mockManagedObjects struct {
	c8y.ManagedObjectsClient
	mock.Mock
}

func (m *mockManagedObjects) Get(ctx context.Context, id string, params *c8y.ManagedObjectGetParams) (*c8y.ManagedObject, error) {
	args := m.Called(ctx, id, params)

	object, _ := args.Get(0).(*c8y.ManagedObject)

	return object, args.Error(1)
}

func TestGetManagedObjects_KeepsArgumentOrder(t *testing.T) {
	t.Parallel()

	objects := &mockManagedObjects{}

	ids := []string{"5", "1", "9", "3", "7", "2"}
	for _, id := range ids {
		objects.On("Get", mock.Anything, id, (*c8y.ManagedObjectGetParams)(nil)).
			Return(&c8y.ManagedObject{ID: id, Name: "device-" + id}, nil).Once()
	}

	results, err := getManagedObjects(context.Background(), objects, ids, nil)
	require.NoError(t, err)
	require.Len(t, results, len(ids))

	for i, id := range ids {
		assert.Equal(t, id, results[i].ID)
		assert.Equal(t, "device-"+id, results[i].Name)
	}

	objects.AssertExpectations(t)
}

func TestGetManagedObjects_Error(t *testing.T) {
	t.Parallel()

	notFound := errors.New("not found")

	objects := &mockManagedObjects{}
	objects.On("Get", mock.Anything, "1", mock.Anything).Return(&c8y.ManagedObject{ID: "1"}, nil).Maybe()
	objects.On("Get", mock.Anything, "2", mock.Anything).Return(nil, notFound)

	_, err := getManagedObjects(context.Background(), objects, []string{"1", "2"}, nil)
	require.ErrorIs(t, err, notFound)
	assert.Contains(t, err.Error(), "managed object 2")
}

func TestAlarmFilterFlags(t *testing.T) {
	t.Parallel()

	flags := alarmFilterFlags{
		source:   "42",
		status:   []string{"active", "ACKNOWLEDGED"},
		severity: []string{"major"},
	}

	filter, err := flags.filter(time.Now())
	require.NoError(t, err)
	assert.Equal(t, "42", *filter.Source)
	assert.Equal(t, []c8y.AlarmStatus{c8y.AlarmStatusActive, c8y.AlarmStatusAcknowledged}, filter.Status)
	assert.Equal(t, []c8y.AlarmSeverity{c8y.AlarmSeverityMajor}, filter.Severity)

	flags.severity = []string{"fatal"}
	_, err = flags.filter(time.Now())
	require.ErrorIs(t, err, constants.ErrInvalidSeverity)
}

func TestParseOperationStatus(t *testing.T) {
	t.Parallel()

	status, err := parseOperationStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, c8y.OperationStatusPending, status)

	_, err = parseOperationStatus("DONE")
	require.ErrorIs(t, err, constants.ErrInvalidStatus)
}
