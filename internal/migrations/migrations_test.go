package migrations

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeSchema struct {
	mock.Mock
}

func (f *fakeSchema) Version() (uint, bool, error) {
	args := f.Called()
	return args.Get(0).(uint), args.Bool(1), args.Error(2)
}

func (f *fakeSchema) Force(version int) error {
	return f.Called(version).Error(0)
}

func (f *fakeSchema) Up() error {
	return f.Called().Error(0)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		autoMigrate bool
		configure   func(m *fakeSchema)
		wantErr     string
	}{
		{
			name:        "fresh database is migrated",
			autoMigrate: true,
			configure: func(m *fakeSchema) {
				m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()
				m.On("Up").Return(nil).Once()
				m.On("Version").Return(uint(1), false, nil).Once()
			},
		},
		{
			name:        "current schema is left alone",
			autoMigrate: true,
			configure: func(m *fakeSchema) {
				m.On("Version").Return(uint(1), false, nil).Once()
				m.On("Up").Return(migrate.ErrNoChange).Once()
			},
		},
		{
			name:        "dirty version is forced then replayed",
			autoMigrate: true,
			configure: func(m *fakeSchema) {
				m.On("Version").Return(uint(1), true, nil).Once()
				m.On("Force", 1).Return(nil).Once()
				m.On("Up").Return(migrate.ErrNoChange).Once()
			},
		},
		{
			name:        "dirty version is reset even when disabled",
			autoMigrate: false,
			configure: func(m *fakeSchema) {
				m.On("Version").Return(uint(1), true, nil).Once()
				m.On("Force", 1).Return(nil).Once()
			},
		},
		{
			name:        "disabled skips up",
			autoMigrate: false,
			configure: func(m *fakeSchema) {
				m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()
			},
		},
		{
			name:        "force failure",
			autoMigrate: true,
			configure: func(m *fakeSchema) {
				m.On("Version").Return(uint(1), true, nil).Once()
				m.On("Force", 1).Return(errors.New("locked")).Once()
			},
			wantErr: "failed to reset replica schema at version 1",
		},
		{
			name:        "up failure",
			autoMigrate: true,
			configure: func(m *fakeSchema) {
				m.On("Version").Return(uint(0), false, migrate.ErrNilVersion).Once()
				m.On("Up").Return(errors.New("syntax error")).Once()
			},
			wantErr: "failed to create replica table",
		},
		{
			name:        "version failure",
			autoMigrate: true,
			configure: func(m *fakeSchema) {
				m.On("Version").Return(uint(0), false, errors.New("no table")).Once()
			},
			wantErr: "failed to read replica schema version",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := &fakeSchema{}
			tc.configure(m)

			err := apply(m, tc.autoMigrate)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestMigrationFiles_Paired(t *testing.T) {
	entries, err := fs.ReadDir(MigrationFiles, ".")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	require.Equal(t, ups, downs)
}

func TestCreateEventsTable_HasDefaultColumns(t *testing.T) {
	b, err := fs.ReadFile(MigrationFiles, "000001_create_experiment_events.up.sql")
	require.NoError(t, err)

	for _, col := range []string{"gcid", "event_ts", "experiment_id", "experiment_name", "variation_id", "variation_blob", "etr_y", "etr_ym", "etr_ymd"} {
		require.Contains(t, string(b), col)
	}
}
