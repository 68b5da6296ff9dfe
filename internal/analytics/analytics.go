// Package analytics derives read-only statistics over the session
// store and owns the only eviction mechanism, CleanupOldSessions.
package analytics

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/domain"
	"github.com/durgeshpatel-dev/Upaj2.0-sub000/internal/store"
)

// topicBuckets are matched by containment over user messages only.
// A message may count toward several buckets.
var topicBuckets = []string{"yield", "weather", "soil", "pest", "irrigation", "fertilizer", "planting"}

const topTopics = 5

// Topic is one keyword bucket with its match count
type Topic struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SessionStats summarizes one session
type SessionStats struct {
	SessionID        string  `json:"sessionId"`
	UserMessages     int     `json:"userMessages"`
	AIMessages       int     `json:"aiMessages"`
	TotalWords       int     `json:"totalWords"`
	AvgResponseMs    float64 `json:"avgResponseMs"`
	DurationMs       int64   `json:"durationMs"`
	Topics           []Topic `json:"topics"`
	ResponsesCounted int     `json:"responsesCounted"`
}

// StoreStats summarizes the whole store
type StoreStats struct {
	TotalSessions      int     `json:"totalSessions"`
	TotalMessages      int     `json:"totalMessages"`
	AvgMessages        float64 `json:"avgMessages"`
	MostActiveDay      string  `json:"mostActiveDay"`
	OldestSessionID    string  `json:"oldestSessionId"`
	NewestSessionID    string  `json:"newestSessionId"`
	MostActiveDayCount int     `json:"mostActiveDayCount"`
}

// AnalyzeSession computes per-session statistics. Response latency is
// the mean of timestamp deltas over user messages immediately followed
// by an AI message; other adjacencies are not counted.
func AnalyzeSession(session domain.ChatSession) SessionStats {
	stats := SessionStats{SessionID: session.ID}
	buckets := map[string]int{}

	var latencySum int64
	for i, msg := range session.Messages {
		stats.TotalWords += len(strings.Fields(msg.Text))

		switch msg.Role {
		case domain.RoleUser:
			stats.UserMessages++
			lowered := strings.ToLower(msg.Text)
			for _, topic := range topicBuckets {
				if strings.Contains(lowered, topic) {
					buckets[topic]++
				}
			}
			if i+1 < len(session.Messages) && session.Messages[i+1].Role == domain.RoleAI {
				latencySum += session.Messages[i+1].Timestamp - msg.Timestamp
				stats.ResponsesCounted++
			}
		case domain.RoleAI:
			stats.AIMessages++
		}
	}

	if stats.ResponsesCounted > 0 {
		stats.AvgResponseMs = float64(latencySum) / float64(stats.ResponsesCounted)
	}
	if n := len(session.Messages); n > 0 {
		stats.DurationMs = session.Messages[n-1].Timestamp - session.Messages[0].Timestamp
	}
	stats.Topics = rankTopics(buckets)

	return stats
}

// AnalyzeAll computes aggregate statistics over the whole store. Ties
// for the most active day go to the day encountered first over sessions
// ordered by creation time.
func AnalyzeAll(all map[string]domain.ChatSession) StoreStats {
	stats := StoreStats{TotalSessions: len(all)}
	if len(all) == 0 {
		return stats
	}

	sessions := make([]domain.ChatSession, 0, len(all))
	for _, s := range all {
		sessions = append(sessions, s)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Created != sessions[j].Created {
			return sessions[i].Created < sessions[j].Created
		}
		return sessions[i].ID < sessions[j].ID
	})

	dayCounts := map[string]int{}
	var oldest, newest domain.ChatSession
	for i, s := range sessions {
		stats.TotalMessages += len(s.Messages)
		day := time.UnixMilli(s.LastUpdated).Format("2006-01-02")
		dayCounts[day]++
		if dayCounts[day] > stats.MostActiveDayCount {
			stats.MostActiveDay = day
			stats.MostActiveDayCount = dayCounts[day]
		}

		if i == 0 {
			oldest = s
			newest = s
			continue
		}
		if s.Created < oldest.Created {
			oldest = s
		}
		if s.LastUpdated > newest.LastUpdated {
			newest = s
		}
	}

	stats.AvgMessages = float64(stats.TotalMessages) / float64(len(sessions))
	stats.OldestSessionID = oldest.ID
	stats.NewestSessionID = newest.ID
	return stats
}

// CleanupOldSessions deletes every session whose LastUpdated is older
// than now minus daysOld, rewriting the store once. Returns the number
// of sessions deleted. Nothing schedules this; callers decide when.
func CleanupOldSessions(ctx context.Context, s *store.SessionStore, daysOld int) (int, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -daysOld).UnixMilli()
	deleted := 0
	for id, session := range all {
		if session.LastUpdated < cutoff {
			delete(all, id)
			deleted++
		}
	}

	if deleted == 0 {
		return 0, nil
	}

	if err := s.ReplaceAll(ctx, all); err != nil {
		return 0, err
	}
	return deleted, nil
}

func rankTopics(buckets map[string]int) []Topic {
	topics := make([]Topic, 0, len(buckets))
	for name, count := range buckets {
		topics = append(topics, Topic{Name: name, Count: count})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Name < topics[j].Name
	})
	if len(topics) > topTopics {
		topics = topics[:topTopics]
	}
	return topics
}
