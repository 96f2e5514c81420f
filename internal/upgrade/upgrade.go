package upgrade

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/haierkeys/note-discord-share/internal/domain"
	"github.com/haierkeys/note-discord-share/pkg/logger"
)

// versionKey 设置文档中的版本字段
const versionKey = "version"

// Migration 定义升级接口，Up 直接修改原始设置文档，必须可重复执行
type Migration interface {
	Version() string
	Description() string
	Up(ctx context.Context, raw map[string]any) error
}

// MigrationManager 升级管理器
type MigrationManager struct {
	logger     *zap.Logger
	migrations []Migration
}

// NewMigrationManager 创建升级管理器
func NewMigrationManager(lg *zap.Logger) *MigrationManager {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &MigrationManager{
		logger: lg,
		migrations: []Migration{
			// 在这里注册所有的升级脚本
			&NestedEmbedSettings{},
		},
	}
}

// NeedsMigration reports whether the stored version tag is absent or differs from the current one.
func NeedsMigration(raw map[string]any) bool {
	v, _ := raw[versionKey].(string)
	return v != domain.SettingsVersion
}

// Run upgrades raw in place when its version tag is absent or mismatched and
// stamps the current version. It reports whether anything was applied.
//
// With a valid older version only the newer migrations run; with no version,
// an unparsable one, or one newer than this build every migration runs.
// Run 执行设置升级
func (m *MigrationManager) Run(ctx context.Context, raw map[string]any) (bool, error) {
	if raw == nil || !NeedsMigration(raw) {
		return false, nil
	}

	stored, _ := raw[versionKey].(string)
	storedSemver := canonical(stored)
	runAll := !semver.IsValid(storedSemver) || semver.Compare(storedSemver, canonical(domain.SettingsVersion)) > 0

	m.logger.Info("settings migration started",
		zap.String(logger.FieldVersion, stored),
		zap.String("target", domain.SettingsVersion))

	migrations := append([]Migration(nil), m.migrations...)
	sort.SliceStable(migrations, func(i, j int) bool {
		return semver.Compare(canonical(migrations[i].Version()), canonical(migrations[j].Version())) < 0
	})

	executed := 0
	for _, migration := range migrations {
		if err := ctx.Err(); err != nil {
			return executed > 0, err
		}

		scriptVersion := canonical(migration.Version())
		if !runAll && semver.Compare(scriptVersion, storedSemver) <= 0 {
			m.logger.Debug("skip migration <= stored version",
				zap.String("scriptVersion", migration.Version()),
				zap.String(logger.FieldVersion, stored))
			continue
		}

		m.logger.Info("applying migration",
			zap.String("scriptVersion", migration.Version()),
			zap.String("desc", migration.Description()))

		if err := migration.Up(ctx, raw); err != nil {
			return executed > 0, fmt.Errorf("migration %s failed: %w", migration.Version(), err)
		}
		executed++
	}

	raw[versionKey] = domain.SettingsVersion
	m.logger.Info("settings migration finished", zap.Int("executed", executed))
	return true, nil
}

// canonical 确保版本有 "v" 前缀用于比较 (semver 库需要)
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
