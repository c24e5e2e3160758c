package pgrepo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/fsdevblog/dzstore/pkg/uow"
)

type SettingsRepository struct {
	conn uow.DBTX
}

func NewSettingsRepository(conn uow.DBTX) *SettingsRepository {
	return &SettingsRepository{conn: conn}
}

func (s *SettingsRepository) GetAll(ctx context.Context) (map[string]string, error) {
	rows, err := s.conn.Query(ctx, `SELECT setting_key, setting_value FROM system_settings`)
	if err != nil {
		return nil, convertErr(err, "reading system settings")
	}
	res := make(map[string]string)
	var key, value string
	_, forErr := pgx.ForEachRow(rows, []any{&key, &value}, func() error {
		res[key] = value
		return nil
	})
	if forErr != nil {
		return nil, convertErr(forErr, "scanning system settings")
	}
	return res, nil
}

func (s *SettingsRepository) Set(ctx context.Context, key, value string) error {
	_, err := s.conn.Exec(ctx,
		`INSERT INTO system_settings (setting_key, setting_value) VALUES ($1, $2)
		ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return convertErr(err, "saving setting %s", key)
	}
	return nil
}
