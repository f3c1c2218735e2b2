// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

/*
Package config loads and validates Framescout configuration.

# Configuration Sources

Configuration is layered with koanf, later sources overriding earlier ones:
  - Built-in defaults (defaultConfig)
  - An optional YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths
  - Environment variables listed in the envMappings table

Unmapped environment variables are ignored.

# Configuration Structure

  - ServerConfig: HTTP listener and timeouts
  - SecurityConfig: CORS origins and per-IP rate limiting
  - LoggingConfig: zerolog level and format
  - DataConfig: hashtag graph, vocabulary embeddings and annotation files
  - IndexesConfig: named vector indexes, each "memory" or a remote base URL
  - EncoderConfig: remote text encoder
  - retrieval.Config: ranking engine tunables
  - EventsConfig: feedback commit transport (in-process or NATS)
  - CatalogConfig: DuckDB keyframe catalog
  - EmbeddingsConfig: Badger item embedding store

# Environment Variables

Server:
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - HTTP_PORT: listen port (default: 8000)
  - HTTP_TIMEOUT: read and write timeout (default: 30s)

Indexes:
  - INDEXES: comma-separated name=target pairs, target "memory" or a base URL
    (default: CLIP_v2=memory)
  - DEFAULT_INDEX: index used when a request names none

Data:
  - GRAPH_PATH, VOCABULARY_PATH, ANNOTATIONS_PATH, EMBEDDINGS_IMPORT_PATH

Retrieval tunables use a RETRIEVAL_ prefix, for example RETRIEVAL_GRAPH_MAX_DEPTH
and RETRIEVAL_EXPLORATION_RATIO. See envMappings for the full list.

# Example

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
