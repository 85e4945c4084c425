package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/contesthub/contest-api/docs"
	v1 "github.com/contesthub/contest-api/internal/api/handler/v1"
	"github.com/contesthub/contest-api/internal/api/middleware"
	"github.com/contesthub/contest-api/internal/config"
	"github.com/contesthub/contest-api/internal/domain"
	"github.com/contesthub/contest-api/internal/metrics"
	"github.com/contesthub/contest-api/internal/repository"
	"github.com/contesthub/contest-api/internal/repository/dao"
	"github.com/contesthub/contest-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	events  v1.EffectDispatcher
	metrics *metrics.Metrics
	users   *service.UserService
}

type handlers struct {
	contest       *v1.ContestHandler
	participation *v1.ParticipationHandler
	entry         *v1.EntryHandler
	rating        *v1.RatingHandler
	leaderboard   *v1.LeaderboardHandler
	conversation  *v1.ConversationHandler
}

func NewServer(conf *config.AppConfig, db *gorm.DB, events v1.EffectDispatcher, m *metrics.Metrics) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config:  conf,
		Router:  engine,
		events:  events,
		metrics: m,
		users:   service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db))),
	}

	s.MountMiddlewares()

	contests := repository.NewContestRepository(dao.NewContestDAO(db))
	entries := repository.NewEntryRepository(dao.NewEntryDAO(db))
	h := handlers{
		contest:       s.initContestHandler(contests),
		participation: s.initParticipationHandler(contests),
		entry:         s.initEntryHandler(entries, contests),
		rating:        s.initRatingHandler(entries, contests),
		leaderboard:   s.initLeaderboardHandler(contests),
		conversation:  s.initConversationHandler(db),
	}
	s.MountHandlers(h)

	return s
}

func (s *Server) initContestHandler(repo *repository.ContestRepository) *v1.ContestHandler {
	svc := service.NewContestService(repo)

	return v1.NewContestHandler(svc, s.users, s.events)
}

func (s *Server) initParticipationHandler(repo *repository.ContestRepository) *v1.ParticipationHandler {
	svc := service.NewParticipationService(repo)

	return v1.NewParticipationHandler(svc, s.users, s.events)
}

func (s *Server) initEntryHandler(repo *repository.EntryRepository, contests *repository.ContestRepository) *v1.EntryHandler {
	svc := service.NewEntryService(repo, contests, s.Config.Contest.MaxPriorEntries)

	return v1.NewEntryHandler(svc, s.users, s.events)
}

func (s *Server) initRatingHandler(repo *repository.EntryRepository, contests *repository.ContestRepository) *v1.RatingHandler {
	svc := service.NewRatingService(repo, contests)

	return v1.NewRatingHandler(svc, s.users, s.events)
}

func (s *Server) initLeaderboardHandler(repo *repository.ContestRepository) *v1.LeaderboardHandler {
	svc := service.NewLeaderboardService(repo, s.Config.Contest.RecomputeAttempts, s.metrics)

	return v1.NewLeaderboardHandler(svc)
}

func (s *Server) initConversationHandler(db *gorm.DB) *v1.ConversationHandler {
	repo := repository.NewConversationRepository(dao.NewConversationDAO(db))
	svc := service.NewConversationService(repo)

	return v1.NewConversationHandler(svc, s.users)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
	s.Router.Use(s.metrics.Middleware())

	if s.Config.API.RateLimit > 0 {
		limiter := middleware.NewIPRateLimiter(s.Config.API.RateLimit, s.Config.API.RateBurst)
		s.Router.Use(middleware.RateLimit(limiter))
	}
}

func (s *Server) MountHandlers(h handlers) {
	const basePath = "/api/v1"

	auth := middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT()

	// Read routes take the contest short id, write routes the numeric id.
	contests := s.Router.Group(basePath, auth)
	{
		contests.GET("/contests", h.contest.HandleListContests)
		contests.GET("/contests/:contestID", h.contest.HandleGetContest)
		contests.POST("/contests/:contestID/like", h.contest.HandleLikeContest)
		contests.POST("/contests/:contestID/view", h.contest.HandleViewContest)
		contests.PUT("/contests/:contestID/contestants", h.participation.HandleEnroll(domain.RoleContestant))
		contests.PUT("/contests/:contestID/judges", h.participation.HandleEnroll(domain.RoleJudge))
		contests.GET("/contests/:contestID/leaderboard", h.leaderboard.HandleLeaderboard)
		contests.GET("/contests/:contestID/leaderboard.xlsx", h.leaderboard.HandleLeaderboardXLSX)
		contests.GET("/contests/:contestID/leaderboard.png", h.leaderboard.HandleLeaderboardPNG)
		contests.POST("/contests/:contestID/entries", h.entry.HandleSubmitEntry)
		contests.GET("/contests/:contestID/entries/contestant", h.entry.HandleContestantEntries)
		contests.GET("/contests/:contestID/entries/judge", h.entry.HandleJudgeEntries)
	}

	entries := s.Router.Group(basePath, auth)
	{
		entries.GET("/entries/:entryID", h.entry.HandleGetEntry)
		entries.PATCH("/entries/:entryID", h.entry.HandleUpdateEntry)
		entries.POST("/entries/:entryID/attachments", h.entry.HandleAddAttachment)
		entries.PATCH("/entries/:entryID/attachments/:attachmentID", h.entry.HandleUpdateAttachment)
		entries.PUT("/entries/:entryID/ratings", h.rating.HandleAddRating)
		entries.PATCH("/entries/:entryID/ratings/:ratingID", h.rating.HandleUpdateRating)
		entries.GET("/entries/:entryID/ratings", h.rating.HandleEntryRatings)
	}

	conversations := s.Router.Group(basePath, auth)
	{
		conversations.GET("/conversations/:conversationID/messages", h.conversation.HandleGetMessages)
		conversations.POST("/conversations/:conversationID/messages", h.conversation.HandlePostMessage)
	}

	admin := s.Router.Group(basePath+"/admin", auth, v1.RequireAdmin(s.users))
	{
		admin.POST("/contests", h.contest.HandleCreateContest)
		admin.PATCH("/contests/:contestID", h.contest.HandleUpdateContest)
		admin.DELETE("/contests/:contestID", h.contest.HandleDeleteContest)
		admin.PATCH("/contests/:contestID/contestants/:participationID", h.participation.HandleApprove(domain.RoleContestant))
		admin.PATCH("/contests/:contestID/judges/:participationID", h.participation.HandleApprove(domain.RoleJudge))
		admin.DELETE("/contests/:contestID/contestants/:participationID", h.participation.HandleRemove(domain.RoleContestant))
		admin.DELETE("/contests/:contestID/judges/:participationID", h.participation.HandleRemove(domain.RoleJudge))
		admin.POST("/contests/:contestID/leaderboard/recompute", h.leaderboard.HandleRecompute)
		admin.DELETE("/entries/:entryID", h.entry.HandleRemoveEntry)
		admin.DELETE("/entries/:entryID/ratings/:ratingID", h.rating.HandleRemoveRating)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Contest API"
	docs.SwaggerInfo.Description = "Contest participation, judging and leaderboard service."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
