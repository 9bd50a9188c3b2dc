package registry

import (
	"sort"

	"scholarshub/internal/pkg/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModuleContext carries the shared dependencies a module wires itself with.
// PushPool is nil when push delivery is not configured.
type ModuleContext struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Router   *gin.Engine
	PushPool *worker.PushPool
}

// Module is one self-registering domain (user, post, notification).
type Module interface {
	Name() string

	// Init performs dependency injection and route registration.
	Init(ctx *ModuleContext) error

	// Priority orders initialization; lower runs first. The user module
	// initializes before post, which depends on its repositories.
	Priority() int
}

var moduleRegistry = make(map[string]Module)

// Register is called from each module's init().
func Register(module Module) {
	moduleRegistry[module.Name()] = module
}

// InitModules initializes all registered modules in priority order.
func InitModules(ctx *ModuleContext) error {
	modules := make([]Module, 0, len(moduleRegistry))
	for _, m := range moduleRegistry {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Priority() < modules[j].Priority()
	})

	for _, module := range modules {
		if err := module.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}
