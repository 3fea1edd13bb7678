package config

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Data      DataConfig      `yaml:"data"`
	Templates TemplatesConfig `yaml:"templates"`
	Formgen   FormgenConfig   `yaml:"formgen"`
	Org       OrgConfig       `yaml:"org"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Type string `yaml:"type"` // sqlite, mysql
	DSN  string `yaml:"dsn"`
}

type DataConfig struct {
	Dir       string `yaml:"dir"`
	NotesFile string `yaml:"notes_file"`
}

// TemplatesConfig 文本模板存储配置
type TemplatesConfig struct {
	Store string `yaml:"store"` // db, file
	File  string `yaml:"file"`
}

// FormgenConfig .formgen 文件目录与备份配置
type FormgenConfig struct {
	Dir             string `yaml:"dir"`
	BackupDir       string `yaml:"backup_dir"`
	BackupRetention uint   `yaml:"backup_retention"` // 0 表示不清理
}

// OrgConfig 组织级常量变量（AM 邮寄地址等）
type OrgConfig struct {
	LooseVariables map[string]string `yaml:"loose_variables"`
}

var (
	cfg  *Config
	once sync.Once
)

func GetConfig() *Config {
	once.Do(func() {
		cfg = loadConfig()
	})
	return cfg
}

// DefaultLooseVariables 内置的组织常量
func DefaultLooseVariables() map[string]string {
	return map[string]string{
		"AMMailingName":    "Attn: A/M Forms (Sue)",
		"AMStreetAddress":  "131 Griffis Rd",
		"AMCity":           "Gloversville",
		"AMState":          "NY",
		"AMZip":            "12078",
		"AMCityStateZip":   "Gloversville, NY 12078",
		"AMMailingAddress": "Attn: A/M Forms (Sue)\n131 Griffis Rd\nGloversville, NY 12078",
	}
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			DSN:  "./data/app.db",
		},
		Data: DataConfig{
			Dir: "./data",
		},
		Templates: TemplatesConfig{
			Store: "db",
		},
		Formgen: FormgenConfig{
			BackupRetention: 10,
		},
		Org: OrgConfig{
			LooseVariables: DefaultLooseVariables(),
		},
	}
}

func loadConfig() *Config {
	config := defaultConfig()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err == nil {
		yaml.Unmarshal(data, config)
	}

	applyEnv(config)
	applyDerivedDefaults(config)
	return config
}

// applyEnv 环境变量优先级高于配置文件
func applyEnv(config *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}

	// 数据库环境变量
	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		config.Database.Type = dbType
	}
	if dbDSN := os.Getenv("DB_DSN"); dbDSN != "" {
		config.Database.DSN = dbDSN
	}

	// 数据目录环境变量
	if dataDir := os.Getenv("DATA_DIR"); dataDir != "" {
		config.Data.Dir = dataDir
	}
	if store := os.Getenv("TEMPLATE_STORE"); store != "" {
		config.Templates.Store = store
	}
	if formgenDir := os.Getenv("FORMGEN_DIR"); formgenDir != "" {
		config.Formgen.Dir = formgenDir
	}
	if backupDir := os.Getenv("BACKUP_DIR"); backupDir != "" {
		config.Formgen.BackupDir = backupDir
	}
	if retention := os.Getenv("BACKUP_RETENTION"); retention != "" {
		if n, err := strconv.ParseUint(retention, 10, 32); err == nil {
			config.Formgen.BackupRetention = uint(n)
		}
	}
}

// applyDerivedDefaults 未配置的文件路径都落在数据目录下
func applyDerivedDefaults(config *Config) {
	if config.Data.NotesFile == "" {
		config.Data.NotesFile = filepath.Join(config.Data.Dir, "SavedNotes.json")
	}
	if config.Templates.File == "" {
		config.Templates.File = filepath.Join(config.Data.Dir, "TextTemplates.json")
	}
	if config.Formgen.Dir == "" {
		config.Formgen.Dir = filepath.Join(config.Data.Dir, "Formgen")
	}
	if config.Formgen.BackupDir == "" {
		config.Formgen.BackupDir = filepath.Join(config.Data.Dir, "FormgenBackup")
	}
	if len(config.Org.LooseVariables) == 0 {
		config.Org.LooseVariables = DefaultLooseVariables()
	}
}
