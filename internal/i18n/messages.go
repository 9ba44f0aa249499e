package i18n

var messages = map[string]map[string]string{
	LocaleZhTW: {
		"app.title":                    "Mission Tool 部落格",
		"nav.home":                     "文章列表",
		"nav.login":                    "登入",
		"nav.logout":                   "登出",
		"post.list.title":              "所有文章",
		"post.list.count":              "共 %d 篇",
		"post.list.empty":              "目前沒有文章",
		"post.add":                     "新增文章",
		"post.edit":                    "編輯",
		"post.delete":                  "刪除",
		"post.back":                    "返回列表",
		"post.id":                      "編號",
		"post.title":                   "標題",
		"post.content":                 "內容",
		"post.status":                  "狀態",
		"post.category":                "分類",
		"post.created_at":              "建立時間",
		"post.updated_at":              "更新時間",
		"post.status.draft":            "草稿",
		"post.status.published":        "已發佈",
		"post.category.none":           "未分類",
		"post.category.choose":         "請選擇分類",
		"post.category.Dev":            "開發",
		"post.category.Tools":          "工具",
		"post.category.Life":           "生活",
		"post.category.Note":           "筆記",
		"form.create.title":            "新增文章",
		"form.edit.title":              "編輯文章",
		"form.submit":                  "送出",
		"form.submitting":              "送出中…",
		"form.required":                "請填寫所有欄位",
		"form.create.failed":           "新增失敗",
		"form.update.failed":           "更新失敗",
		"form.create.succeeded":        "新增成功",
		"form.update.succeeded":        "更新成功",
		"delete.confirm.title":         "確認刪除",
		"delete.confirm.prompt":        "確定要刪除這篇文章嗎？",
		"delete.confirm.required":      "請先確認刪除",
		"delete.confirm.yes":           "確定刪除",
		"delete.confirm.cancel":        "取消",
		"delete.failed":                "刪除失敗",
		"delete.succeeded":             "刪除成功",
		"login.title":                  "登入",
		"login.username":               "帳號",
		"login.password":               "密碼",
		"login.submit":                 "登入",
		"login.failed":                 "登入失敗",
		"login.required":               "請輸入帳號與密碼",
		"login.succeeded":              "登入成功",
		"login.rate_limited":           "嘗試次數過多，請稍後再試",
		"logout.succeeded":             "已登出",
		"session.ended":                "登入已失效，請重新登入",
		"error.title":                  "發生錯誤",
		"error.not_found":              "找不到這篇文章",
		"error.page_not_found":         "找不到頁面",
		"error.list_failed":            "無法取得文章列表",
		"error.post_failed":            "無法取得文章",
		"error.load_failed":            "無法載入文章",
		"error.internal":               "系統錯誤",
		"error.too_many_requests":      "請求過於頻繁",
		"error.rate_limit_unavailable": "暫時無法登入，請稍後再試",
		"error.session_unavailable":    "無法讀取登入狀態",
	},
	LocaleEnUS: {
		"app.title":                    "Mission Tool Blog",
		"nav.home":                     "Posts",
		"nav.login":                    "Log in",
		"nav.logout":                   "Log out",
		"post.list.title":              "All posts",
		"post.list.count":              "%d posts",
		"post.list.empty":              "No posts yet",
		"post.add":                     "New post",
		"post.edit":                    "Edit",
		"post.delete":                  "Delete",
		"post.back":                    "Back to list",
		"post.id":                      "ID",
		"post.title":                   "Title",
		"post.content":                 "Content",
		"post.status":                  "Status",
		"post.category":                "Category",
		"post.created_at":              "Created",
		"post.updated_at":              "Updated",
		"post.status.draft":            "Draft",
		"post.status.published":        "Published",
		"post.category.none":           "Uncategorized",
		"post.category.choose":         "Choose a category",
		"post.category.Dev":            "Dev",
		"post.category.Tools":          "Tools",
		"post.category.Life":           "Life",
		"post.category.Note":           "Note",
		"form.create.title":            "New post",
		"form.edit.title":              "Edit post",
		"form.submit":                  "Submit",
		"form.submitting":              "Submitting…",
		"form.required":                "Please fill in every field",
		"form.create.failed":           "Create failed",
		"form.update.failed":           "Update failed",
		"form.create.succeeded":        "Post created",
		"form.update.succeeded":        "Post updated",
		"delete.confirm.title":         "Confirm delete",
		"delete.confirm.prompt":        "Delete this post?",
		"delete.confirm.required":      "Please confirm the delete first",
		"delete.confirm.yes":           "Delete",
		"delete.confirm.cancel":        "Cancel",
		"delete.failed":                "Delete failed",
		"delete.succeeded":             "Post deleted",
		"login.title":                  "Log in",
		"login.username":               "Username",
		"login.password":               "Password",
		"login.submit":                 "Log in",
		"login.failed":                 "Login failed",
		"login.required":               "Enter username and password",
		"login.succeeded":              "Logged in",
		"login.rate_limited":           "Too many attempts, try again later",
		"logout.succeeded":             "Logged out",
		"session.ended":                "Your session has ended, please log in again",
		"error.title":                  "Something went wrong",
		"error.not_found":              "Post not found",
		"error.page_not_found":         "Page not found",
		"error.list_failed":            "Could not load posts",
		"error.post_failed":            "Could not load the post",
		"error.load_failed":            "Could not load the post",
		"error.internal":               "Internal error",
		"error.too_many_requests":      "Too many requests",
		"error.rate_limit_unavailable": "Login is temporarily unavailable, try again later",
		"error.session_unavailable":    "Could not read the login state",
	},
}
