package config

import (
	"github.com/agenpets/scheduler-api/internal/model"
	"github.com/agenpets/scheduler-api/pkg/logger"
	"github.com/agenpets/scheduler-api/pkg/messaging/redis"
	"github.com/agenpets/scheduler-api/pkg/worker"
)

func (c *Config) ToWorkerConfig() worker.OutboxProcessorConfig {
	return worker.OutboxProcessorConfig{
		BatchSize:     c.Outbox.BatchSize,
		PollInterval:  c.Outbox.PollInterval,
		RetryAttempts: c.Outbox.RetryAttempts,
		RetryDelay:    c.Outbox.RetryDelay,
		ChannelPrefix: c.Redis.ChannelPrefix,
	}
}

func (c *RedisConfig) ToBrokerConfig() redis.Config {
	return redis.Config{
		URL:          c.URL,
		MaxRetries:   c.MaxRetries,
		RetryBackoff: c.RetryBackoff,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
	}
}

func (c *LoggingConfig) ToLoggerConfig() logger.Config {
	return logger.Config{Level: c.Level, Format: c.Format}
}

// ToServiceConfig returns the scheduling settings used for tenants without
// a stored configuration.
func (c *SchedulingConfig) ToServiceConfig() model.ServiceConfig {
	return model.ServiceConfig{
		OpeningTime:  c.OpeningTime,
		ClosingTime:  c.ClosingTime,
		SlotMinutes:  c.SlotMinutes,
		BathMinutes:  c.BathMinutes,
		GroomMinutes: c.GroomMinutes,
		Timezone:     c.Timezone,
	}
}

// ToStaffMembers converts the memory driver seed into roster members.
func (c *DatabaseConfig) ToStaffMembers() ([]model.StaffMember, error) {
	members := make([]model.StaffMember, 0, len(c.Seed))
	for _, s := range c.Seed {
		skills := make(model.SkillSet, 0, len(s.Skills))
		for _, tag := range s.Skills {
			skill, err := model.ParseSkill(tag)
			if err != nil {
				return nil, err
			}
			skills = append(skills, skill)
		}
		members = append(members, model.StaffMember{
			TenantID: s.TenantID,
			Name:     s.Name,
			Skills:   skills,
			Active:   true,
		})
	}
	return members, nil
}
