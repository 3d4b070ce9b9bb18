// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite path or PostgreSQL connection string (default: sharemix.db)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AdminKeySalt: Secret for admin key HMAC (required)
  - YTAPIKey: YouTube Data API key (optional)
  - ChannelID: Default channel for /api/youtube-subs
  - YTAPIBase: YouTube Data API base URL

# Sources

Values are resolved in this order:

 1. CLI flags
 2. Environment variables
 3. The dotenv file named by -env (default .env), loaded without
    overriding variables that are already set; a missing file is ignored
 4. Built-in defaults

	-p            PORT
	-d            DATABASE_URL
	-t            DATABASE_TYPE
	-admin-salt   ADMIN_KEY_SALT
	-yt-key       YT_API_KEY
	-channel      YT_CHANNEL_ID
	-yt-base      YT_API_BASE

# Validation

ParseFlags returns an error when ADMIN_KEY_SALT is missing, PORT is not a
number, or the database type is unknown. A missing YT_API_KEY only fails
stats requests.
*/
package cliparse
