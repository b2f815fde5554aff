package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-todo-auth/config"
	"github.com/oksasatya/go-todo-auth/internal/domain/repository"
	"github.com/oksasatya/go-todo-auth/pkg/helpers"
	"github.com/oksasatya/go-todo-auth/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router auto-wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	users       repository.UserRepository
	todos       repository.TodoRepository
	redisClient *redis.Client

	jwtManager *helpers.JWTManager
	hasher     *helpers.BcryptHasher
	resetGen   *helpers.ResetTokenGenerator

	mailSender mailer.Sender
	esClient   *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		return helpers.NewDiscardLogger()
	}
	return logger
}

// SetStore installs the repositories backing users and todos (postgres or memory).
func SetStore(u repository.UserRepository, t repository.TodoRepository) { users, todos = u, t }
func GetUserRepo() repository.UserRepository                          { return users }
func GetTodoRepo() repository.TodoRepository                          { return todos }

func SetRedis(r *redis.Client) { redisClient = r }
func GetRedis() *redis.Client  { return redisClient }

func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetHasher(h *helpers.BcryptHasher) { hasher = h }
func GetHasher() *helpers.BcryptHasher {
	if hasher == nil {
		hasher = &helpers.BcryptHasher{Cost: helpers.DefaultBcryptCost}
	}
	return hasher
}

func SetResetTokens(g *helpers.ResetTokenGenerator) { resetGen = g }
func GetResetTokens() *helpers.ResetTokenGenerator {
	if resetGen == nil {
		resetGen = helpers.NewResetTokenGenerator()
	}
	return resetGen
}

func SetMailSender(s mailer.Sender) { mailSender = s }
func GetMailSender() mailer.Sender  { return mailSender }

func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }
