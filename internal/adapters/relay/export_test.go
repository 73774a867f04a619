package relay

var FollowsFromTags = followsFromTags
