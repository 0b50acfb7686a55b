package main

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/iliyamo/billiard-table-reservation/internal/availability"
    "github.com/iliyamo/billiard-table-reservation/internal/booking"
    "github.com/iliyamo/billiard-table-reservation/internal/config"
    "github.com/iliyamo/billiard-table-reservation/internal/database"
    "github.com/iliyamo/billiard-table-reservation/internal/handler"
    "github.com/iliyamo/billiard-table-reservation/internal/middleware"
    "github.com/iliyamo/billiard-table-reservation/internal/queue"
    "github.com/iliyamo/billiard-table-reservation/internal/repository"
    "github.com/iliyamo/billiard-table-reservation/internal/router"
    queue_publisher "github.com/iliyamo/billiard-table-reservation/internal/service"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()
    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis backs the response cache and the rate limiter; both degrade to
    // no-ops when it is unreachable.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Printf("redis unavailable; cache and rate limiting disabled")
    }

    accounts := repository.NewAccountRepo(db)
    tokens := repository.NewTokenRepo(db)
    tables := repository.NewTableRepo(db)
    reservations := repository.NewReservationRepo(db)
    reschedules := repository.NewRescheduleRepo(db)
    notifications := repository.NewNotificationRepo(db)
    reasons := repository.NewReasonRepo(db)

    checker := availability.New(availability.LoadSchedule())

    svc := booking.New(
        booking.SQLTxRunner{DB: db},
        reservations, reschedules, notifications, tables, reasons,
        checker,
        queue_publisher.PublishReservationEvent,
        cfg.RescheduleRevalidate,
    )

    // Background consumer appends decided transitions to logs/reservation.log.
    go func() {
        if err := queue.StartReservationConsumer(); err != nil {
            log.Printf("reservation consumer stopped: %v", err)
        }
    }()

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    authH := handler.NewAuthHandler(cfg, accounts, tokens)
    tableH := handler.NewTableHandler(tables, reservations, checker)
    customerH := handler.NewCustomerReservationHandler(svc, reservations)
    staffH := handler.NewStaffReservationHandler(svc, reservations, reasons)
    rescheduleH := handler.NewRescheduleHandler(svc, reschedules)
    notifH := handler.NewNotificationHandler(notifications)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, tableH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
    router.RegisterCustomer(e, customerH, cfg.JWTSecret)
    router.RegisterStaff(e, staffH, rescheduleH, cfg.JWTSecret)
    router.RegisterNotifications(e, notifH, cfg.JWTSecret)
    router.RegisterAdmin(e, tableH, cfg.JWTSecret)

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
