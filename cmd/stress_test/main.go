package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/bakery-storefront/internal/adapter/storage"
	"github.com/rl1809/bakery-storefront/internal/core/domain"
	"github.com/rl1809/bakery-storefront/internal/core/service"
	"github.com/rl1809/bakery-storefront/internal/port"
	"github.com/rl1809/bakery-storefront/pkg/config"
	"github.com/rl1809/bakery-storefront/pkg/logger"
)

const (
	productID      = 2
	totalShoppers  = 50
	totalInquiries = 20
	queueSize      = 100
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(logger.Options{Service: "bakery-stress", Env: cfg.AppEnv, Level: "warn"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer rdb.Close()

	// Clear previous test data
	rdb.Del(ctx, "bakeryCart", "contactSubmissions")

	adapter := storage.NewRedisAdapter(rdb, cfg.SessionTTL)
	newStore := func() *service.Storefront {
		return service.NewStorefront(ctx, service.StorefrontDeps{
			Catalog:     domain.BakeryCatalog(),
			Carts:       adapter,
			Sessions:    adapter,
			Submissions: adapter,
			Confirmer:   port.ConfirmerFunc(func(ctx context.Context, prompt string) bool { return true }),
			Logger:      log,
		})
	}
	store := newStore()

	loop := service.NewEventLoop(queueSize, log)
	go loop.Run()
	defer loop.Close()

	// Counters
	var successCount atomic.Int32
	var rejectCount atomic.Int32
	var failCount atomic.Int32

	// Spawn concurrent shoppers and inquiries
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalShoppers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			// Every fifth shopper wants the sold out cinnamon roll
			id := productID
			if n%5 == 0 {
				id = 9
			}
			var addErr error
			err := loop.Do(ctx, func(ctx context.Context) {
				_, addErr = store.AddToCart(ctx, id)
			})
			switch {
			case err != nil:
				failCount.Add(1)
			case addErr != nil:
				rejectCount.Add(1)
			default:
				successCount.Add(1)
			}
		}(i)
	}

	for i := 0; i < totalInquiries; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			form := domain.NewContactForm()
			form.Name = fmt.Sprintf("shopper-%d", n)
			form.Email = fmt.Sprintf("shopper-%d@example.com", n)
			form.Message = "Do you have gluten free options?"

			var submitErr error
			err := loop.Do(ctx, func(ctx context.Context) {
				_, submitErr = store.SubmitContact(ctx, form)
			})
			if err != nil || submitErr != nil {
				failCount.Add(1)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	rejected := rejectCount.Load()
	fail := failCount.Load()
	wantRejected := int32(totalShoppers / 5)

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Shoppers:         %d\n", totalShoppers)
	fmt.Printf("Added:            %d\n", success)
	fmt.Printf("Out of stock:     %d\n", rejected)
	fmt.Printf("Failed:           %d\n", fail)
	fmt.Printf("Inquiries:        %d\n", totalInquiries)
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if rejected == wantRejected && success == int32(totalShoppers)-wantRejected && fail == 0 {
		fmt.Printf("PASS: %d added, %d refused as out of stock\n", success, rejected)
	} else {
		fmt.Printf("FAIL: Expected %d added/%d refused/0 failed, got %d/%d/%d\n",
			int32(totalShoppers)-wantRejected, wantRejected, success, rejected, fail)
	}

	// A restarted storefront sees the same cart
	reloaded := newStore().CartSummary()
	fmt.Printf("Reloaded cart:    %d items, total %s\n", reloaded.TotalItems, reloaded.TotalPrice)
	if reloaded.TotalItems == int(success) && len(reloaded.Items) == 1 {
		fmt.Println("PASS: Cart persisted after every add")
	} else {
		fmt.Printf("FAIL: Expected %d items in 1 line, got %d in %d\n", success, reloaded.TotalItems, len(reloaded.Items))
	}

	subs, err := adapter.ListSubmissions(ctx)
	if err != nil {
		fmt.Printf("FAIL: list submissions: %v\n", err)
		return
	}
	if len(subs) == totalInquiries {
		fmt.Printf("PASS: %d inquiries recorded\n", len(subs))
	} else {
		fmt.Printf("FAIL: Expected %d inquiries, got %d\n", totalInquiries, len(subs))
	}
}
