package storage

import (
	"FormUp/storage/database"
	"FormUp/storage/mq"
	"FormUp/storage/redis"
)

// Init brings up all storage backends.
func Init() error {
	if err := database.Init(); err != nil {
		return err
	}

	if err := redis.Init(); err != nil {
		return err
	}

	if err := mq.Init(); err != nil {
		return err
	}

	return nil
}
