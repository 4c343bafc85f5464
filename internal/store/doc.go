// Package store defines the persistence gateway contract for cards and the
// errors shared by every store implementation (postgres, redis, memory).
package store
