package deps

import (
	"context"
	"fintrack/internal/config"
	dl "fintrack/internal/core/domain/logging"
	"fintrack/internal/core/domain/notification"
	passwordreset "fintrack/internal/core/domain/password_reset"
	drl "fintrack/internal/core/domain/rate_limiter"
	"fintrack/internal/core/domain/user"
	dbpasswordreset "fintrack/internal/db/password_reset"
	dbuser "fintrack/internal/db/user"
	"fintrack/internal/implementations/email"
	"fintrack/internal/implementations/logging"
	"fintrack/internal/implementations/notifier"
	passwordhasher "fintrack/internal/implementations/password_hasher"
	ratelimiter "fintrack/internal/implementations/rate_limiter"
	resettokenrepository "fintrack/internal/implementations/reset_token_repository"
	tokengenerator "fintrack/internal/implementations/token_generator"
	"fintrack/internal/rabbitmq"
	rabbitmqnotifier "fintrack/internal/rabbitmq/publishers/notifier"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UserRepository          user.UserRepository
	PasswordResetRepository passwordreset.Repository
	PasswordResetTokenStore passwordreset.TokenStore

	RateLimiter drl.RateLimiter

	PasswordHasher          user.PasswordHasher
	PasswordResetLinkSender passwordreset.LinkSender
	Notifier                notification.Notifier
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.PasswordResetRepository = deps.initPasswordResetRepository()
	deps.PasswordResetTokenStore = passwordreset.NewStore(
		deps.Logger,
		deps.PasswordResetRepository,
		tokengenerator.NewGenerator(),
		deps.Config.PasswordResetTokenTTL,
		deps.Now,
	)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	if deps.Config.PasswordResetDelivery == config.DeliveryEmail {
		deps.PasswordResetLinkSender = email.NewResetLinkSender(
			deps.AwsConfig,
			deps.Config.AwsEmailSender,
			deps.Config.AwsEmailPasswordResetTemplate,
			deps.Config.PasswordResetBaseUrl,
		)
	}

	closeNotifier := deps.initNotifier()

	return deps, func() {
		closeFuncs := []func(){
			closeNotifier,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.IsTestMode)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	if deps.Config.RabbitmqURL == "" {
		deps.Logger.Info(context.Background(), "RabbitMQ is disabled.")
		return func() {}
	}

	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initPasswordResetRepository() passwordreset.Repository {
	deps.Logger.Info(
		context.Background(),
		"Password reset token storage.",
		dl.Entry("storage", deps.Config.PasswordResetTokenStorage),
	)
	switch deps.Config.PasswordResetTokenStorage {
	case config.StorageRedis:
		return resettokenrepository.NewRedis(deps.Redis, deps.Config.PasswordResetRedisNamespace)
	case config.StorageMemory:
		return resettokenrepository.NewMemory()
	default:
		return dbpasswordreset.NewPgxRepository(deps.DB)
	}
}

func (deps *Deps) initNotifier() func() {
	if deps.Rabbitmq == nil {
		deps.Notifier = notifier.NewLogNotifier(deps.Logger)
		return func() {}
	}

	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	exchange := deps.Config.RabbitmqNotificationsExchange
	if err := rabbitmqChannel.DeclareExchange(exchange, "topic"); err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}

	deps.Notifier = rabbitmqnotifier.NewRabbitMQ(deps.Logger, rabbitmqChannel, exchange)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down notifier.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Notifier shut down.")
	}
}
