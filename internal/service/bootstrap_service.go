package service

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ignatzorin/portfolio-backend/internal/dto"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/models"
)

//go:embed fixtures/bootstrap.yaml
var bootstrapFixturesYAML []byte

// BootstrapFixtures данные для заполнения пустой базы.
type BootstrapFixtures struct {
	Profile  profileFixture   `yaml:"profile"`
	Services []serviceFixture `yaml:"services"`
}

type profileFixture struct {
	FullName string `yaml:"full_name"`
	Title    string `yaml:"title"`
	Bio      string `yaml:"bio"`
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
}

func (f profileFixture) draft() *dto.ProfileDraft {
	d := &dto.ProfileDraft{FullName: f.FullName, Title: f.Title, Bio: f.Bio}
	if f.Email != "" {
		d.Email = &f.Email
	}
	if f.Location != "" {
		d.Location = &f.Location
	}
	return d
}

type serviceFixture struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	IconName    string `yaml:"icon_name"`
	Order       int    `yaml:"order"`
}

func (f serviceFixture) draft() *dto.ServiceDraft {
	return &dto.ServiceDraft{Title: f.Title, Description: f.Description, IconName: f.IconName, Order: f.Order}
}

// LoadBootstrapFixtures разбирает встроенный файл с начальными данными.
func LoadBootstrapFixtures() (*BootstrapFixtures, error) {
	return parseBootstrapFixtures(bootstrapFixturesYAML)
}

func parseBootstrapFixtures(raw []byte) (*BootstrapFixtures, error) {
	var fixtures BootstrapFixtures
	if err := yaml.Unmarshal(raw, &fixtures); err != nil {
		return nil, fmt.Errorf("bootstrap: parse fixtures: %w", err)
	}
	if err := fixtures.Profile.draft().Validate(); err != nil {
		return nil, fmt.Errorf("bootstrap: profile fixture: %w", err)
	}
	for i := range fixtures.Services {
		if err := fixtures.Services[i].draft().Validate(); err != nil {
			return nil, fmt.Errorf("bootstrap: service fixture %d: %w", i, err)
		}
	}
	return &fixtures, nil
}

// StoreProber проверяет соединение с базой и доступность таблиц.
type StoreProber interface {
	Ping(ctx context.Context) error
	ProbeTable(ctx context.Context, table string) error
}

// SeedTarget таблица, которую можно заполнить начальными данными.
type SeedTarget interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, fields map[string]any) error
}

// countCreator часть EntityRepository, нужная для заполнения таблицы.
type countCreator[T any] interface {
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, fields map[string]any) (*T, error)
}

type seedTable[T any] struct {
	store countCreator[T]
}

// SeedTable приводит репозиторий сущности к SeedTarget.
func SeedTable[T any](store countCreator[T]) SeedTarget {
	return seedTable[T]{store: store}
}

func (t seedTable[T]) Count(ctx context.Context) (int, error) {
	return t.store.Count(ctx)
}

func (t seedTable[T]) Create(ctx context.Context, fields map[string]any) error {
	_, err := t.store.Create(ctx, fields)
	return err
}

// BucketChecker проверяет наличие бакета хранилища.
type BucketChecker interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// AdminProvisioner создаёт администратора, если его ещё нет.
type AdminProvisioner interface {
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

// BootstrapSummary итог подготовки базы и хранилища.
type BootstrapSummary struct {
	Success          bool   `json:"success"`
	TablesConfirmed  bool   `json:"tables_confirmed"`
	BucketsConfirmed bool   `json:"buckets_confirmed"`
	Error            string `json:"error,omitempty"`
}

// BootstrapDeps зависимости BootstrapService.
type BootstrapDeps struct {
	Prober   StoreProber
	Profiles SeedTarget
	Services SeedTarget
	Buckets  BucketChecker
	Admins   AdminProvisioner
	// Cache сбрасывается после заполнения таблиц. Может быть nil.
	Cache *QueryCache
}

// BootstrapService проверяет таблицы и бакеты и заполняет пустую базу примерами.
// Схему создают миграции, сервис DDL не выполняет.
type BootstrapService struct {
	deps          BootstrapDeps
	fixtures      *BootstrapFixtures
	adminEmail    string
	adminPassword string
}

// NewBootstrapService создаёт сервис начальной настройки.
func NewBootstrapService(deps BootstrapDeps, fixtures *BootstrapFixtures, adminEmail, adminPassword string) *BootstrapService {
	return &BootstrapService{
		deps:          deps,
		fixtures:      fixtures,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

// Run выполняет проверку и заполнение. Ошибки отдельных шагов попадают в лог и сводку.
func (s *BootstrapService) Run(ctx context.Context) BootstrapSummary {
	log := logger.Component("bootstrap")
	log.Info("начальная настройка хранилища")

	if err := s.deps.Prober.Ping(ctx); err != nil {
		log.WithError(err).Error("нет соединения с базой данных")
		return BootstrapSummary{Error: "не удалось подключиться к базе данных"}
	}

	tablesConfirmed := s.confirmTables(ctx)
	if tablesConfirmed {
		s.seed(ctx)
	}
	bucketsConfirmed := s.confirmBuckets(ctx)

	if s.adminEmail != "" && s.deps.Admins != nil {
		created, err := s.deps.Admins.EnsureAdmin(ctx, s.adminEmail, s.adminPassword)
		switch {
		case err != nil:
			log.WithError(err).Error("не удалось создать администратора")
		case created:
			log.WithField("email", s.adminEmail).Info("создан администратор")
		}
	}

	summary := BootstrapSummary{
		Success:          tablesConfirmed && bucketsConfirmed,
		TablesConfirmed:  tablesConfirmed,
		BucketsConfirmed: bucketsConfirmed,
	}
	if !tablesConfirmed {
		summary.Error = "таблицы базы данных недоступны"
	}
	return summary
}

// confirmTables читает по одной строке из каждой таблицы. Первая ошибка прерывает проверку.
func (s *BootstrapService) confirmTables(ctx context.Context) bool {
	log := logger.Component("bootstrap")
	for _, table := range models.Tables {
		if err := s.deps.Prober.ProbeTable(ctx, table); err != nil {
			log.WithField("table", table).WithError(err).Error("ошибка проверки таблицы")
			return false
		}
		log.WithField("table", table).Debug("таблица доступна")
	}
	return true
}

func (s *BootstrapService) seed(ctx context.Context) {
	if s.fixtures == nil {
		return
	}
	log := logger.Component("bootstrap")
	seeded := false

	count, err := s.deps.Profiles.Count(ctx)
	switch {
	case err != nil:
		log.WithError(err).Error("ошибка проверки профиля")
	case count == 0:
		if err := s.deps.Profiles.Create(ctx, s.fixtures.Profile.draft().Fields()); err != nil {
			log.WithError(err).Error("не удалось добавить пример профиля")
		} else {
			log.Info("добавлен пример профиля")
			seeded = true
		}
	}

	count, err = s.deps.Services.Count(ctx)
	switch {
	case err != nil:
		log.WithError(err).Error("ошибка проверки услуг")
	case count == 0:
		inserted := 0
		for i := range s.fixtures.Services {
			if err := s.deps.Services.Create(ctx, s.fixtures.Services[i].draft().Fields()); err != nil {
				log.WithError(err).Error("не удалось добавить пример услуги")
				break
			}
			inserted++
		}
		if inserted > 0 {
			log.WithField("count", inserted).Info("добавлены примеры услуг")
			seeded = true
		}
	}

	if seeded && s.deps.Cache != nil {
		s.deps.Cache.Flush()
	}
}

// confirmBuckets проверяет бакеты. Отсутствующий бакет только отмечается в логе,
// в production бакеты создаются вручную.
func (s *BootstrapService) confirmBuckets(ctx context.Context) bool {
	log := logger.Component("bootstrap")
	confirmed := true
	for _, bucket := range models.Buckets {
		exists, err := s.deps.Buckets.BucketExists(ctx, bucket)
		switch {
		case err != nil:
			log.WithField("bucket", bucket).WithError(err).Error("ошибка проверки бакета")
			confirmed = false
		case exists:
			log.WithField("bucket", bucket).Debug("бакет существует")
		default:
			log.WithField("bucket", bucket).Warn("бакет не найден, его нужно создать вручную")
		}
	}
	return confirmed
}
