package wire

import (
	"Yatube/internal/api"
	"Yatube/internal/api/config"
	"Yatube/internal/api/handler"
	"Yatube/internal/job"
	"Yatube/internal/pkg/cron"
	"Yatube/internal/pkg/es"
	"Yatube/internal/pkg/kafka"
	"Yatube/internal/pkg/minio"
	ymongo "Yatube/internal/pkg/mongo"
	"Yatube/internal/repository"
	"Yatube/internal/service"
	log "log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager
	FeedSvc      service.FeedService
}

// BuildApplication 可选组件（MinIO / ES / Mongo / Kafka）未启用时相应功能关闭
func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	groupRepo := repository.NewGroupRepo(db)
	postRepo := repository.NewPostRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	followRepo := repository.NewFollowRepo(db)

	var blob service.BlobStore
	var publicURL func(string) string
	if cfg.MinIO.Enabled {
		store := minio.NewStore()
		blob = store
		publicURL = store.PublicURL
	}

	var search es.PostRepo
	if cfg.Elastic.Enabled {
		search = es.NewPostRepo(es.Client)
	}

	var revisions ymongo.PostRevisionRepo
	if mongoDB != nil {
		revisions = ymongo.NewPostRevisionRepo(mongoDB)
	}

	feedCache := newFeedCache(cfg.Feed.CacheBackend)
	registry := service.NewRedisMediaRegistry()

	feedSvc := service.NewFeedService(userRepo, groupRepo, postRepo, commentRepo, followRepo, service.FeedOptions{
		PageSize:  cfg.Feed.PageSize,
		Cache:     feedCache,
		CacheTTL:  time.Duration(cfg.Feed.CacheTTL) * time.Second,
		PublicURL: publicURL,
	})
	postSvc := service.NewPostService(postRepo, groupRepo, service.PostOptions{
		Cache:        feedCache,
		FlushOnWrite: cfg.Feed.FlushOnWrite,
		IndexOnWrite: !cfg.Kafka.Enabled,
		Blob:         blob,
		Registry:     registry,
		Revisions:    revisions,
		Search:       search,
		PageSize:     cfg.Feed.PageSize,
	})
	commentSvc := service.NewCommentService(postRepo, commentRepo, userRepo)
	followSvc := service.NewFollowService(userRepo, followRepo)
	userSvc := service.NewUserService(userRepo)
	groupSvc := service.NewGroupService(groupRepo)
	mediaSvc := service.NewMediaService(blob, registry)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(userSvc),
		GroupHandler:   handler.NewGroupHandler(groupSvc),
		FeedHandler:    handler.NewFeedHandler(feedSvc),
		PostHandler:    handler.NewPostHandler(postSvc),
		CommentHandler: handler.NewCommentHandler(commentSvc),
		FollowHandler:  handler.NewFollowHandler(followSvc),
		MediaHandler:   handler.NewMediaHandler(mediaSvc),
	}

	router := api.SetupRouter(handlers, cfg.Server, cfg.RateLimit)

	var mediaJob *job.MediaCleanupJob
	if blob != nil {
		mediaJob = job.NewMediaCleanupJob(blob, time.Duration(cfg.Cron.MediaMaxAgeHours)*time.Hour)
	}
	var reindexJob *job.SearchReindexJob
	if search != nil {
		reindexJob = job.NewSearchReindexJob(postRepo, search, time.Duration(cfg.Cron.SearchReindexDays)*24*time.Hour)
	}
	cronMgr := cron.NewCronManager(cfg.Cron, mediaJob, reindexJob)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.Kafka.Enabled && search != nil {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, postRepo, search, feedSvc)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
		FeedSvc:      feedSvc,
	}, nil
}

func newFeedCache(backend string) service.FeedCache {
	switch backend {
	case "memory":
		return service.NewMemoryFeedCache()
	case "none", "":
		log.Warn("feed cache disabled")
		return nil
	default:
		return service.NewRedisFeedCache()
	}
}
