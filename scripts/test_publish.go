//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tourism-microservice/internal/domain"
)

// Публикует тестовое событие place.created и ждёт, пока воркер сбросит кеш листингов.
func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	name := flag.String("name", "วัดพระธาตุพนม", "Place name in the event")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Метка в кеше листингов, которую должен удалить ListingCacheWorker
	sentinel := domain.PlacesCacheKey("published")
	if err := client.Set(ctx, sentinel, "[]", time.Minute).Err(); err != nil {
		log.Fatalf("Failed to seed listing cache: %v", err)
	}

	event := domain.PlaceEvent{
		Type:         domain.PlaceEventCreated,
		ID:           time.Now().Unix(),
		Name:         *name,
		CategoryName: domain.CategoryAttraction,
		Location:     "นครพนม",
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamPlaceEvents,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamPlaceEvents)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Place: %d %s\n", event.ID, event.Name)

	fmt.Printf("\nWaiting for listing cache invalidation (%s)...\n", sentinel)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			fmt.Println("Timeout: is cmd/worker running?")
			return
		case <-ticker.C:
			n, err := client.Exists(ctx, sentinel).Result()
			if err != nil {
				continue
			}
			if n == 0 {
				fmt.Println("Listing cache invalidated")
				return
			}
		}
	}
}
