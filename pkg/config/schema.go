package config

// Schema is the JSON schema for validating the merged configuration values.
// Every value is a string because it comes from a .env file or the environment.
const Schema = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "OSS_ACCESS_KEY_ID": {
            "type": "string",
            "minLength": 1
        },
        "OSS_ACCESS_KEY_SECRET": {
            "type": "string",
            "minLength": 1
        },
        "OSS_ENDPOINT": {
            "type": "string",
            "minLength": 1,
            "description": "Endpoint URL or host; base directory for the local provider"
        },
        "OSS_BUCKET_NAME": {
            "type": "string",
            "minLength": 1
        },
        "OSS_SIGN_EXPIRES": {
            "type": "string",
            "pattern": "^[1-9][0-9]*$",
            "description": "Default signed URL lifetime in seconds"
        },
        "OSS_PROVIDER": {
            "type": "string",
            "enum": ["s3", "minio", "backblaze", "local"]
        },
        "OSS_REGION": {
            "type": "string"
        },
        "OSS_KEY_PREFIX": {
            "type": "string"
        },
        "OSS_FORCE_PATH_STYLE": {
            "type": "string",
            "enum": ["true", "false", "1", "0", ""]
        },
        "OSS_LOG_LEVEL": {
            "type": "string",
            "enum": ["trace", "debug", "info", "warn", "error"]
        },
        "OSS_LOG_FORMAT": {
            "type": "string",
            "enum": ["json", "console"]
        }
    },
    "required": ["OSS_ACCESS_KEY_ID", "OSS_ACCESS_KEY_SECRET", "OSS_ENDPOINT", "OSS_BUCKET_NAME"]
}`
