package script

import "GoEngage/common/infra/lua"

// 返回 {payload, status, version}，status取值见cache包
var GetPosts = lua.NewScript("get_posts", `
local key=KEYS[1]
local versionKey=KEYS[2]

local version=redis.call("GET",versionKey)
if not version then
    version="0"
end

local str=redis.call("GET",key)
if not str then
    return {"","8",version}
end

local hint,payload=string.match(str,"^(%d+);(.*)$")
if not hint then
    return {"","8",version}
end

local status="2"
if tonumber(hint)>=tonumber(redis.call("TTL",key)) then
    status="4"
end

return {payload,status,version}
`)

// 读缓存之后有写入时version会变化，此时放弃写回
var BuildPosts = lua.NewScript("build_posts", `
local key=KEYS[1]
local versionKey=KEYS[2]
local payload=ARGV[1]
local ttl=ARGV[2]
local hint=ARGV[3]
local version=ARGV[4]

local current=redis.call("GET",versionKey)
if not current then
    current="0"
end
if current~=version then
    return 0
end

redis.call("SET",key,hint..";"..payload,"EX",tonumber(ttl))
return 1
`)

var InvalidatePosts = lua.NewScript("invalidate_posts", `
local key=KEYS[1]
local versionKey=KEYS[2]
local ttl=ARGV[1]

redis.call("INCR",versionKey)
redis.call("EXPIRE",versionKey,tonumber(ttl))
redis.call("DEL",key)
return 1
`)

func All() []*lua.Script {
	return []*lua.Script{GetPosts, BuildPosts, InvalidatePosts}
}
